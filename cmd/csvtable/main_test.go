package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_JSON(t *testing.T) {
	path := writeFile(t, "people.csv", "name,age\nalice,30\nbob,25\n")

	stdout, _, err := runCLI(t, "", path)
	require.NoError(t, err)

	var out tableOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, []string{"name", "age"}, out.Headers)
	assert.Equal(t, [][]string{{"alice", "30"}, {"bob", "25"}}, out.Rows)
}

func TestRun_NoHeader(t *testing.T) {
	stdout, _, err := runCLI(t, "a,b\nc,d\n", "-header=false", "-")
	require.NoError(t, err)

	var out tableOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Empty(t, out.Headers)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, out.Rows)
}

func TestRun_TableFormat(t *testing.T) {
	stdout, _, err := runCLI(t, "name,age\nalice,30\n", "-format", "table", "-")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"name", "age"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"alice", "30"}, strings.Fields(lines[1]))
}

func TestRun_Tokens(t *testing.T) {
	stdout, _, err := runCLI(t, "a,\"b\"\n", "-tokens", "-")
	require.NoError(t, err)

	var kinds []string
	dec := json.NewDecoder(strings.NewReader(stdout))
	for dec.More() {
		var tok csv.Token
		require.NoError(t, dec.Decode(&tok))
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []string{
		csv.TokenField, csv.TokenComma, csv.TokenDQuote, csv.TokenField, csv.TokenDQuote, csv.TokenNewline,
	}, kinds)
}

func TestRun_ParseError(t *testing.T) {
	path := writeFile(t, "bad.csv", "a,b\n1,2,3\n")

	_, _, err := runCLI(t, "", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, csv.ErrInvalidRowLength)
	assert.Equal(t, "InvalidRowLength: 1:0: expected 2 elements, got 3", err.Error())
}

func TestRun_Parquet(t *testing.T) {
	path := writeFile(t, "people.csv", "name,age\nalice,30\n")
	out := filepath.Join(t.TempDir(), "people.parquet")

	stdout, _, err := runCLI(t, "", "-parquet", out, path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRun_SQLite(t *testing.T) {
	path := writeFile(t, "people.csv", "name,age\nalice,30\n")
	db := filepath.Join(t.TempDir(), "people.db")

	_, _, err := runCLI(t, "", "-sqlite", db, "-table", "people", path)
	require.NoError(t, err)

	info, err := os.Stat(db)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRun_ConfigFile(t *testing.T) {
	cfgPath := writeFile(t, "csvtable.yaml", "export:\n  header: false\nlog:\n  format: text\n")

	stdout, _, err := runCLI(t, "a,b\n", "-config", cfgPath, "-")
	require.NoError(t, err)

	var out tableOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Empty(t, out.Headers)
	assert.Equal(t, [][]string{{"a", "b"}}, out.Rows)
}

func TestRun_FlagOverridesConfig(t *testing.T) {
	cfgPath := writeFile(t, "csvtable.yaml", "export:\n  header: false\n")

	stdout, _, err := runCLI(t, "a,b\nc,d\n", "-config", cfgPath, "-header", "-")
	require.NoError(t, err)

	var out tableOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, []string{"a", "b"}, out.Headers)
}

func TestRun_Schema(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", "columns:\n  - name: name\n    required: true\n  - name: age\n    type: int\n")

	_, _, err := runCLI(t, "name,age\nalice,30\n", "-schema", schemaPath, "-")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "name,age\nalice,old\n", "-schema", schemaPath, "-")
	require.Error(t, err)

	var result csv.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "age", result.Errors[0].Column)
}

func TestRun_Version(t *testing.T) {
	stdout, _, err := runCLI(t, "", "-version")
	require.NoError(t, err)
	assert.Equal(t, "csvtable version "+Version+"\n", stdout)
}

func TestRun_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", nil},
		{"two inputs", []string{"a.csv", "b.csv"}},
		{"bad output format", []string{"-format", "xml", "x.csv"}},
		{"bad log level", []string{"-log-level", "loud", "x.csv"}},
		{"serve with input", []string{"-serve", "x.csv"}},
		{"sqlite without table", []string{"-sqlite", "x.db", "-table", "", "x.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
