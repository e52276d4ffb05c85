package annotations

import (
	"context"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceparentHeader is the W3C trace-context header field carrying the
// serialized span context.
const TraceparentHeader = "traceparent"

// SpanSource resolves to the underlying OpenTelemetry span whose context
// should be serialized. It is a closed union with two cases: a raw span
// (Span) and a higher-level wrapper around one (Wrapped).
type SpanSource interface {
	otelSpan() trace.Span
}

// Span adapts a raw OpenTelemetry span as a SpanSource.
func Span(s trace.Span) SpanSource { return nativeSpan{span: s} }

// Unwrapper is implemented by higher-level span wrappers that can expose
// their underlying OpenTelemetry span.
type Unwrapper interface {
	Unwrap() trace.Span
}

// Wrapped adapts a span wrapper as a SpanSource. The wrapper must hold a
// non-nil underlying span; Traceparent panics otherwise.
func Wrapped(w Unwrapper) SpanSource { return wrappedSpan{wrapper: w} }

type nativeSpan struct {
	span trace.Span
}

func (n nativeSpan) otelSpan() trace.Span { return n.span }

type wrappedSpan struct {
	wrapper Unwrapper
}

func (w wrappedSpan) otelSpan() trace.Span {
	span := w.wrapper.Unwrap()
	if span == nil {
		panic("annotations: wrapped span has no underlying span")
	}
	return span
}

// traceparentPropagator is stateless and safe for concurrent use.
var traceparentPropagator = propagation.TraceContext{}

// Traceparent serializes the span context of src into a W3C traceparent
// header value. The string links annotations emitted later, possibly from a
// different process, back to the original trace.
//
// Returns "" when the propagator produces no header (e.g. a noop or invalid
// span context); callers should treat that as "no parent", not as an error.
func Traceparent(src SpanSource) string {
	ctx := trace.ContextWithSpan(context.Background(), src.otelSpan())
	carrier := propagation.MapCarrier{}
	traceparentPropagator.Inject(ctx, carrier)
	return carrier.Get(TraceparentHeader)
}
