package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/abgdnv/productcatalog/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func Test_install(t *testing.T) {
	// given
	recorder := tracetest.NewSpanRecorder()
	tp := install("product", tracesdk.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	// when
	_, span := otel.Tracer("test").Start(context.Background(), "operation")
	span.End()
	// then
	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "operation", ended[0].Name())
	found := false
	for _, attr := range ended[0].Resource().Attributes() {
		if string(attr.Key) == "service.name" {
			found = true
			assert.Equal(t, "product", attr.Value.AsString())
		}
	}
	assert.True(t, found)
}

func Test_NewTracerProvider(t *testing.T) {
	// given
	cfg := config.TelemetryConfig{Enabled: true}
	cfg.Traces.OtlpHttp.Endpoint = "localhost:4318"
	cfg.Traces.OtlpHttp.Insecure = true
	cfg.Traces.OtlpHttp.Timeout = time.Second
	// when
	tp, err := NewTracerProvider(context.Background(), "product", cfg)
	// then
	require.NoError(t, err)
	assert.NotNil(t, tp)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = tp.Shutdown(ctx)
}
