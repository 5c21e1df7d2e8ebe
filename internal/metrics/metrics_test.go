package metrics

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	require.NotNil(t, registry.Metrics)
	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestMetrics_Parse(t *testing.T) {
	registry := NewRegistry()
	m := registry.Metrics

	table, err := m.Parse("http", []byte("a,b\nc,d\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	_, err = m.Parse("http", []byte("a,b\nc"))
	require.Error(t, err)

	_, err = m.Parse("http", []byte("\"a\"x"))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseTotal.WithLabelValues("http", ResultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ParseTotal.WithLabelValues("http", ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseErrors.WithLabelValues("InvalidRowLength")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseErrors.WithLabelValues("InvalidCharacter")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ParseDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ParseRows))
}

func TestMetrics_ObserveIOError(t *testing.T) {
	m := NewMetrics()

	m.Observe("file", time.Millisecond, nil, os.ErrNotExist)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseTotal.WithLabelValues("file", ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseErrors.WithLabelValues("io")))
}

func TestErrorKindLabel(t *testing.T) {
	assert.Equal(t, "io", ErrorKindLabel(errors.New("boom")))

	m := NewMetrics()
	_, err := m.Parse("cli", []byte("\"open"))
	require.Error(t, err)
	assert.Equal(t, "GenericError", ErrorKindLabel(err))
}
