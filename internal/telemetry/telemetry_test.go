package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/donaldgifford/network-link-manager/internal/config"
	"github.com/donaldgifford/network-link-manager/pkg/logger"
)

func TestSetup_Disabled(t *testing.T) {
	t.Parallel()

	tp, shutdown, err := Setup(context.Background(), &config.TelemetryConfig{}, "dev", logger.Discard())
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.NoError(t, shutdown(context.Background()))

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ratio     float64
		wantSpans int
	}{
		{name: "always sample", ratio: 1, wantSpans: 1},
		{name: "never sample", ratio: 0, wantSpans: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			exp := tracetest.NewInMemoryExporter()
			tp := NewProvider(exp, &config.TelemetryConfig{SampleRatio: tt.ratio}, "1.2.3")

			t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

			_, span := tp.Tracer("test").Start(context.Background(), "op")
			span.End()
			require.NoError(t, tp.ForceFlush(context.Background()))

			spans := exp.GetSpans()
			require.Len(t, spans, tt.wantSpans)
			if tt.wantSpans == 0 {
				return
			}

			attrs := map[string]string{}
			for _, kv := range spans[0].Resource.Attributes() {
				attrs[string(kv.Key)] = kv.Value.AsString()
			}
			assert.Equal(t, defaultServiceName, attrs["service.name"])
			assert.Equal(t, "1.2.3", attrs["service.version"])
		})
	}
}

func TestClientOptions(t *testing.T) {
	t.Parallel()

	assert.Len(t, clientOptions(&config.TelemetryConfig{Endpoint: "otel:4317"}), 1)
	assert.Len(t, clientOptions(&config.TelemetryConfig{Endpoint: "otel:4317", Insecure: true}), 3)
}
