// Package httpapi exposes the CSV parser over HTTP.
//
// Routes:
//
//	GET  /health       liveness
//	GET  /metrics      Prometheus metrics
//	POST /v1/parse     parse the request body, ?header=true splits off the header row
//	POST /v1/validate  parse the request body and report only the outcome
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shapestone/shape-csvtable/internal/metrics"
	"github.com/shapestone/shape-csvtable/pkg/csv"
)

// MaxBodyBytes bounds the size of a request body.
const MaxBodyBytes = 32 << 20

// metricsSource labels parse metrics recorded by this package.
const metricsSource = "http"

// ParseResponse is the body of a successful /v1/parse.
type ParseResponse struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows"`
}

// ErrorBody describes a failed parse.
type ErrorBody struct {
	Kind           string `json:"kind"`
	Line           int    `json:"line"`
	Column         int    `json:"column"`
	Message        string `json:"message"`
	Expected       string `json:"expected,omitempty"`
	Got            string `json:"got,omitempty"`
	ExpectedFields int    `json:"expected_fields,omitempty"`
	GotFields      int    `json:"got_fields,omitempty"`
}

// NewErrorBody converts a *csv.ParseError into its JSON form.
func NewErrorBody(pe *csv.ParseError) ErrorBody {
	body := ErrorBody{
		Kind:    pe.Kind.String(),
		Line:    pe.Pos.Line,
		Column:  pe.Pos.Column,
		Message: pe.Error(),
	}
	switch pe.Kind {
	case csv.KindInvalidCharacter:
		body.Expected = string(pe.Expected)
		body.Got = string(pe.Got)
	case csv.KindInvalidRowLength:
		body.ExpectedFields = pe.ExpectedFields
		body.GotFields = pe.GotFields
	}
	return body
}

type handler struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(registry *metrics.Registry, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "httpapi")

	h := &handler{metrics: registry.Metrics, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry.PrometheusRegistry(), promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	v1.POST("/parse", h.parse)
	v1.POST("/validate", h.validate)

	return r
}

func (h *handler) readBody(c *gin.Context) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": gin.H{"message": "request body too large"}})
			return nil, false
		}
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": fmt.Sprintf("read body: %v", err)}})
		return nil, false
	}
	return data, true
}

// writeParseError responds 422 for a ParseError and 500 for anything else.
func (h *handler) writeParseError(c *gin.Context, err error) {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": NewErrorBody(pe)})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": err.Error()}})
}

func (h *handler) parse(c *gin.Context) {
	header := false
	if v := c.Query("header"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "header must be a boolean"}})
			return
		}
		header = b
	}

	data, ok := h.readBody(c)
	if !ok {
		return
	}

	table, err := h.metrics.Parse(metricsSource, data)
	if err != nil {
		h.writeParseError(c, err)
		return
	}
	c.Set("rows_processed", table.Len())

	resp := ParseResponse{Rows: table.Records()}
	if header && len(resp.Rows) > 0 {
		resp.Headers = resp.Rows[0]
		resp.Rows = resp.Rows[1:]
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) validate(c *gin.Context) {
	data, ok := h.readBody(c)
	if !ok {
		return
	}

	table, err := h.metrics.Parse(metricsSource, data)
	if err != nil {
		h.writeParseError(c, err)
		return
	}
	c.Set("rows_processed", table.Len())
	c.JSON(http.StatusOK, gin.H{"valid": true, "rows": table.Len(), "columns": table.Width()})
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func Serve(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
