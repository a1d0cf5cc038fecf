package observability_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/markboard/pkg/observability"
)

func TestInit_NoopTracingWithoutEndpoint(t *testing.T) {
	t.Parallel()

	providers, err := observability.InitWithWriter(observability.DefaultConfig(), io.Discard)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)
	assert.NotNil(t, providers.MetricsHandler)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	defer span.End()

	assert.False(t, span.SpanContext().IsValid())
}

func TestInit_LoggerWritesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogJSON = true
	cfg.Mode = observability.ModeServe

	providers, err := observability.InitWithWriter(cfg, &buf)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	providers.Logger.Info("ready", "students", 5)

	assert.Contains(t, buf.String(), `"msg":"ready"`)
	assert.Contains(t, buf.String(), `"service":"markboard"`)
	assert.Contains(t, buf.String(), `"mode":"serve"`)
}

func TestInit_MetricsHandlerServesInstruments(t *testing.T) {
	t.Parallel()

	providers, err := observability.InitWithWriter(observability.DefaultConfig(), io.Discard)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	red, err := observability.NewREDMetrics(providers.Meter)
	require.NoError(t, err)

	red.RecordRequest(context.Background(), "GET /api/overview", "ok", 3*time.Millisecond)

	rec := httptest.NewRecorder()
	providers.MetricsHandler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "markboard_requests")
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "api-key=abc", want: map[string]string{"api-key": "abc"}},
		{name: "trimmed pairs", raw: " a = 1 , b=2", want: map[string]string{"a": "1", "b": "2"}},
		{name: "no separators", raw: "garbage", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, observability.ParseOTLPHeaders(tt.raw))
		})
	}
}
