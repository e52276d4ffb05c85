package telemetry

import (
	"context"
	"crypto/tls"
	"testing"
	"time"

	"github.com/JailtonJunior94/annotations-go/pkg/annotations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestOptions(t *testing.T) {
	var s settings
	for _, opt := range []Option{
		WithInsecure(),
		WithSampler(sdktrace.AlwaysSample()),
		WithBatchTimeout(2 * time.Second),
		WithMetricExportInterval(5 * time.Second),
	} {
		opt(&s)
	}

	assert.True(t, s.insecure)
	assert.NotNil(t, s.sampler)
	assert.Equal(t, 2*time.Second, s.batchTimeout)
	assert.Equal(t, 5*time.Second, s.exportInterval)
}

func TestWithTLS_OverridesInsecure(t *testing.T) {
	var s settings
	WithInsecure()(&s)
	WithTLS(&tls.Config{MinVersion: tls.VersionTLS12})(&s)

	assert.False(t, s.insecure)
	assert.NotNil(t, s.tlsConfig)
}

func TestNewServiceResource(t *testing.T) {
	res, err := NewServiceResource(context.Background(), "annotations-demo", "1.0.0", "test")
	require.NoError(t, err)

	found := false
	for _, attr := range res.Attributes() {
		if attr.Key == "service.name" {
			found = true
			assert.Equal(t, "annotations-demo", attr.Value.AsString())
		}
	}
	assert.True(t, found, "service.name attribute missing")
}

func TestNoopProvider(t *testing.T) {
	provider := NewNoop()

	require.NotNil(t, provider.TracerProvider())
	require.NotNil(t, provider.MeterProvider())
	require.NotNil(t, provider.Logger())

	assert.NoError(t, provider.Shutdown(context.Background()))
	assert.NoError(t, provider.ShutdownWithTimeout(time.Second))
}

func TestNoopProvider_AnnotatorEmitsNothingObservable(t *testing.T) {
	provider := NewNoop()
	annotator := provider.Annotator(annotations.Config{})

	// must not panic or block; spans vanish into the noop provider
	annotator.RecordFeedback(context.Background(), "", "score", annotations.Score(0.5))
}
