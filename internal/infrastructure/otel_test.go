package infrastructure

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func newTestProviders(t *testing.T) *OTelProviders {
	t.Helper()

	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "none"

	providers, err := InitializeOTel(cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(ctx)
	})
	return providers
}

func TestOTelInitialization(t *testing.T) {
	providers := newTestProviders(t)

	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.PrometheusHTTP)
}

func TestBusinessMetrics(t *testing.T) {
	providers := newTestProviders(t)

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	assert.NotNil(t, metrics.HTTPRequestsTotal)
	assert.NotNil(t, metrics.HTTPRequestDuration)
	assert.NotNil(t, metrics.HTTPActiveRequests)
	assert.NotNil(t, metrics.SnapshotsTotal)
	assert.NotNil(t, metrics.SnapshotDuration)
	assert.NotNil(t, metrics.FilterEventsTotal)
	assert.NotNil(t, metrics.ExportsTotal)
	assert.NotNil(t, metrics.WSConnections)
	assert.NotNil(t, metrics.SystemErrors)

	// Recording must not panic
	ctx := context.Background()
	RecordSnapshotMetrics(ctx, metrics, "set_state", 3*time.Millisecond)
	RecordExportMetrics(ctx, metrics, "csv", 42)
	RecordSnapshotMetrics(ctx, nil, "set_state", time.Millisecond)
}

func TestPrometheusEndpoint(t *testing.T) {
	providers := newTestProviders(t)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestTraceIDFromContext(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01},
		SpanID:  trace.SpanID{0x01},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)
	assert.NotEmpty(t, TraceIDFromContext(ctx))
}

func TestDefaultOTelConfig(t *testing.T) {
	cfg := DefaultOTelConfig()

	assert.Equal(t, ServiceName, cfg.ServiceName)
	assert.True(t, cfg.EnableMetrics)
	assert.True(t, cfg.EnableTracing)
	assert.Equal(t, 1.0, cfg.SampleRatio)
}
