package telemetry

import (
	"log/slog"

	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// NewNoop returns a Provider wired to no-op OpenTelemetry providers and a
// discarding logger. Useful for tests and for running with telemetry
// disabled.
func NewNoop() *Provider {
	return &Provider{
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
		logger:         slog.New(slog.DiscardHandler),
	}
}
