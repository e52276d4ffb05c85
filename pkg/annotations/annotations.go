package annotations

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// ScopeName is the instrumentation scope under which annotation spans are
// emitted, so they can be filtered from regular application spans downstream.
const ScopeName = "github.com/JailtonJunior94/annotations-go/feedback"

// Reserved attribute keys recognized by the Logfire UI. They must be
// preserved exactly.
const (
	AttrFeedbackName    = "logfire.feedback.name"
	AttrFeedbackComment = "logfire.feedback.comment"

	attrMessage  = "logfire.msg"
	attrSpanType = "logfire.span_type"

	spanTypeAnnotation = "annotation"
)

// Annotator emits annotation spans as children of remote trace contexts.
// It is stateless apart from its configuration and safe for concurrent use.
type Annotator struct {
	cfg        Config
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	emitted    metric.Int64Counter
}

// Option configures an Annotator.
type Option func(*annotatorOptions)

type annotatorOptions struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	propagator     propagation.TextMapPropagator
}

// WithTracerProvider sets the provider used to emit annotation spans.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *annotatorOptions) {
		o.tracerProvider = tp
	}
}

// WithMeterProvider sets the provider used for the emission counter.
// Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *annotatorOptions) {
		o.meterProvider = mp
	}
}

// WithPropagator sets the propagator used to restore remote parent contexts.
// Defaults to the W3C trace-context propagator, matching Traceparent.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(o *annotatorOptions) {
		o.propagator = p
	}
}

// New creates an Annotator. The Config is captured once; use ConfigFromEnv
// for the process-wide default behavior.
func New(cfg Config, opts ...Option) *Annotator {
	options := annotatorOptions{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
		propagator:     traceparentPropagator,
	}
	for _, opt := range opts {
		opt(&options)
	}

	meter := options.meterProvider.Meter(ScopeName)
	emitted, err := meter.Int64Counter(
		"logfire.annotations.emitted",
		metric.WithDescription("Number of annotation spans emitted."),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &Annotator{
		cfg:        cfg,
		tracer:     options.tracerProvider.Tracer(ScopeName),
		propagator: options.propagator,
		emitted:    emitted,
	}
}

// Annotate emits one span of kind "annotation" as a child of the span
// identified by traceparent. An empty traceparent leaves parentage to the
// backend, which typically starts a new root trace.
//
// Caller attributes are merged with the decorative x-random-* bag (when
// enabled); caller keys always win on collision. Emission is synchronous from
// the caller's point of view; transport to the backend is the provider's
// concern (batched, deferred, or dropped per its configuration).
func (a *Annotator) Annotate(ctx context.Context, traceparent, spanName, message string, attributes map[string]any) {
	merged := a.mergeDecorations(attributes)

	carrier := propagation.MapCarrier{}
	if traceparent != "" {
		carrier.Set(TraceparentHeader, traceparent)
	}
	parent := a.propagator.Extract(ctx, carrier)

	attrs := convertAttrs(merged)
	attrs = append(attrs,
		attribute.String(attrMessage, message),
		attribute.String(attrSpanType, spanTypeAnnotation),
	)

	_, span := a.tracer.Start(parent, spanName, trace.WithAttributes(attrs...))
	span.End()

	if a.emitted != nil {
		a.emitted.Add(ctx, 1)
	}
}

// FeedbackOption configures a single RecordFeedback call.
type FeedbackOption func(*feedbackOptions)

type feedbackOptions struct {
	comment string
	extra   map[string]any
}

// WithComment attaches a reason for the evaluation under the reserved
// logfire.feedback.comment key. Empty comments are omitted.
func WithComment(comment string) FeedbackOption {
	return func(o *feedbackOptions) {
		o.comment = comment
	}
}

// WithExtra attaches additional attributes to the feedback span. Keys must
// not collide with the feedback name; RecordFeedback panics otherwise.
func WithExtra(extra map[string]any) FeedbackOption {
	return func(o *feedbackOptions) {
		o.extra = extra
	}
}

// RecordFeedback attaches a named evaluation to the span identified by
// traceparent. The value's kind determines downstream interpretation:
// Score, Label or Assertion. The emitted span is named "feedback: <name>"
// and carries the reserved logfire.feedback.* attribute keys.
func (a *Annotator) RecordFeedback(ctx context.Context, traceparent, name string, value Value, opts ...FeedbackOption) {
	var options feedbackOptions
	for _, opt := range opts {
		opt(&options)
	}

	if _, ok := options.extra[name]; ok {
		panic(fmt.Sprintf("annotations: extra attribute key %q collides with the feedback name", name))
	}

	attributes := make(map[string]any, len(options.extra)+3)
	attributes[AttrFeedbackName] = name
	attributes[name] = value.raw()
	for k, v := range options.extra {
		attributes[k] = v
	}
	if options.comment != "" {
		attributes[AttrFeedbackComment] = options.comment
	}

	a.Annotate(ctx, traceparent,
		"feedback: "+name,
		fmt.Sprintf("feedback: %s = %s", name, value),
		attributes,
	)
}

// mergeDecorations merges the decorative attribute bag under the caller's
// attributes. Caller keys are never overridden by decoration.
func (a *Annotator) mergeDecorations(attributes map[string]any) map[string]any {
	decorations := decorativeAttrs(a.cfg)
	if len(decorations) == 0 {
		return attributes
	}

	merged := make(map[string]any, len(attributes)+len(decorations))
	for k, v := range decorations {
		merged[k] = v
	}
	for k, v := range attributes {
		merged[k] = v
	}
	return merged
}
