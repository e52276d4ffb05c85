// Package annotations attaches human- or system-generated annotations and
// structured feedback to spans of a distributed trace, using only the span's
// serialized W3C traceparent string as the link.
//
// The producer side extracts a traceparent from a live span:
//
//	tp := annotations.Traceparent(annotations.Span(span))
//
// The string travels out-of-band (HTTP header, message queue, storage) and a
// different process later attaches feedback to the same trace:
//
//	annotator := annotations.New(annotations.ConfigFromEnv())
//	annotator.RecordFeedback(ctx, tp, "factuality", annotations.Score(0.9),
//	    annotations.WithComment("checked against the source document"))
//
// Every annotation is emitted as a single immediately-ended span in the
// "feedback" instrumentation scope, tagged with the reserved logfire.*
// attribute keys recognized by the Logfire UI.
package annotations
