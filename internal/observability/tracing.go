package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer(meterName)

// StartSweepSpan starts the span covering one scheduler sweep.
func StartSweepSpan(ctx context.Context) (context.Context, trace.Span) {
	return tracer.Start(ctx, "events.sweep",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartStatusChangeSpan starts the span for an operator status change.
func StartStatusChangeSpan(ctx context.Context, eventID, target string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "events.change_status",
		trace.WithAttributes(
			attribute.String("event.id", eventID),
			attribute.String("event.target_status", target),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartLedgerSpan starts the span for a participation ledger operation.
func StartLedgerSpan(ctx context.Context, op, eventID, personID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "participations."+op,
		trace.WithAttributes(
			attribute.String("event.id", eventID),
			attribute.String("person.id", personID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the recording span in ctx, if any.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
