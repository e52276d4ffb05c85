// Package telemetry stands up the OpenTelemetry providers the annotations
// library emits through: traces and metrics over OTLP/gRPC, logs over
// OTLP/HTTP bridged into log/slog. It registers the W3C trace-context
// propagator globally so traceparent strings produced here are understood by
// the annotations package and vice versa.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JailtonJunior94/annotations-go/pkg/annotations"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/credentials"
)

// ShutdownFunc shuts down one telemetry component.
type ShutdownFunc func(context.Context) error

// Provider bundles the configured OpenTelemetry providers and their
// shutdown functions.
type Provider struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	logger         *slog.Logger
	shutdowns      []ShutdownFunc
}

// TracerProvider returns the provider annotation spans should be emitted
// through.
func (p *Provider) TracerProvider() trace.TracerProvider { return p.tracerProvider }

// MeterProvider returns the provider for metric instruments.
func (p *Provider) MeterProvider() metric.MeterProvider { return p.meterProvider }

// Logger returns a slog logger whose records are exported over OTLP.
func (p *Provider) Logger() *slog.Logger { return p.logger }

// Annotator builds an annotations.Annotator wired to this provider.
func (p *Provider) Annotator(cfg annotations.Config) *annotations.Annotator {
	return annotations.New(cfg,
		annotations.WithTracerProvider(p.tracerProvider),
		annotations.WithMeterProvider(p.meterProvider),
	)
}

// Shutdown flushes and stops all components, attempting every shutdown even
// if one fails.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	for _, shutdown := range p.shutdowns {
		if err := shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ShutdownWithTimeout shuts down all components within the given timeout.
func (p *Provider) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return p.Shutdown(ctx)
}

// Setup creates trace, metric and log providers per the configuration,
// sets them as the OTel globals and registers the W3C composite propagator.
// By default TLS is enabled using system certificates; use WithInsecure()
// for development.
func Setup(ctx context.Context, cfg Config, opts ...Option) (*Provider, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	res, err := NewServiceResource(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, err
	}

	provider := &Provider{}

	tracerProvider, err := newTracerProvider(ctx, cfg.TraceEndpoint, res, s)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}
	provider.tracerProvider = tracerProvider
	provider.shutdowns = append(provider.shutdowns, tracerProvider.Shutdown)

	meterProvider, err := newMeterProvider(ctx, cfg.MetricEndpoint, res, s)
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("failed to create meter provider: %w", err),
			provider.Shutdown(ctx),
		)
	}
	provider.meterProvider = meterProvider
	provider.shutdowns = append(provider.shutdowns, meterProvider.Shutdown)

	loggerProvider, err := newLoggerProvider(ctx, cfg.LogEndpoint, res, s)
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("failed to create logger provider: %w", err),
			provider.Shutdown(ctx),
		)
	}
	provider.shutdowns = append(provider.shutdowns, loggerProvider.Shutdown)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	global.SetLoggerProvider(loggerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	provider.logger = otelslog.NewLogger(cfg.ServiceName, otelslog.WithLoggerProvider(loggerProvider))

	return provider, nil
}

// NewServiceResource creates an OpenTelemetry resource with service metadata.
func NewServiceResource(ctx context.Context, name, version, environment string) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.TelemetrySDKLanguageGo,
			semconv.ServiceNameKey.String(name),
			semconv.ServiceVersionKey.String(version),
			semconv.DeploymentEnvironmentName(environment),
		),
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithOS(),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

func newTracerProvider(ctx context.Context, endpoint string, res *resource.Resource, s settings) (*sdktrace.TracerProvider, error) {
	grpcOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	switch {
	case s.insecure:
		grpcOpts = append(grpcOpts, otlptracegrpc.WithInsecure())
	case s.tlsConfig != nil:
		grpcOpts = append(grpcOpts, otlptracegrpc.WithTLSCredentials(credentials.NewTLS(s.tlsConfig)))
	default:
		grpcOpts = append(grpcOpts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
	}

	exporter, err := otlptracegrpc.New(ctx, grpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize trace exporter: %w", err)
	}

	batchOpts := []sdktrace.BatchSpanProcessorOption{}
	if s.batchTimeout > 0 {
		batchOpts = append(batchOpts, sdktrace.WithBatchTimeout(s.batchTimeout))
	}

	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter, batchOpts...),
	}
	if s.sampler != nil {
		providerOpts = append(providerOpts, sdktrace.WithSampler(s.sampler))
	}

	return sdktrace.NewTracerProvider(providerOpts...), nil
}

func newMeterProvider(ctx context.Context, endpoint string, res *resource.Resource, s settings) (*sdkmetric.MeterProvider, error) {
	grpcOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(endpoint)}
	switch {
	case s.insecure:
		grpcOpts = append(grpcOpts, otlpmetricgrpc.WithInsecure())
	case s.tlsConfig != nil:
		grpcOpts = append(grpcOpts, otlpmetricgrpc.WithTLSCredentials(credentials.NewTLS(s.tlsConfig)))
	default:
		grpcOpts = append(grpcOpts, otlpmetricgrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
	}

	exporter, err := otlpmetricgrpc.New(ctx, grpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metric exporter: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if s.exportInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(s.exportInterval))
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
	), nil
}

func newLoggerProvider(ctx context.Context, endpoint string, res *resource.Resource, s settings) (*sdklog.LoggerProvider, error) {
	httpOpts := []otlploghttp.Option{otlploghttp.WithEndpointURL(endpoint)}
	switch {
	case s.insecure:
		httpOpts = append(httpOpts, otlploghttp.WithInsecure())
	case s.tlsConfig != nil:
		httpOpts = append(httpOpts, otlploghttp.WithTLSClientConfig(s.tlsConfig))
	}

	exporter, err := otlploghttp.New(ctx, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize log exporter: %w", err)
	}

	return sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	), nil
}
