package telemetry

import (
	"crypto/tls"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config holds the endpoints and service identity for telemetry setup.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	// TraceEndpoint is the gRPC endpoint for traces (format: "host:port").
	// Example: "otel-collector:4317"
	TraceEndpoint string

	// MetricEndpoint is the gRPC endpoint for metrics (format: "host:port").
	MetricEndpoint string

	// LogEndpoint is the HTTP endpoint for logs (format: "http(s)://host:port/path").
	// Example: "http://otel-collector:4318/v1/logs"
	LogEndpoint string
}

type settings struct {
	insecure       bool
	tlsConfig      *tls.Config
	sampler        sdktrace.Sampler
	batchTimeout   time.Duration
	exportInterval time.Duration
}

// Option configures telemetry setup.
type Option func(*settings)

// WithInsecure disables TLS for all exporter connections.
// WARNING: Only use in development environments.
func WithInsecure() Option {
	return func(s *settings) {
		s.insecure = true
	}
}

// WithTLS sets a custom TLS configuration for the exporter connections.
func WithTLS(cfg *tls.Config) Option {
	return func(s *settings) {
		s.tlsConfig = cfg
		s.insecure = false
	}
}

// WithSampler sets a custom sampler for traces.
func WithSampler(sampler sdktrace.Sampler) Option {
	return func(s *settings) {
		s.sampler = sampler
	}
}

// WithBatchTimeout sets the delay between span batch exports.
func WithBatchTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.batchTimeout = timeout
	}
}

// WithMetricExportInterval sets the interval between metric exports.
func WithMetricExportInterval(interval time.Duration) Option {
	return func(s *settings) {
		s.exportInterval = interval
	}
}
