package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Span is a traced operation.
type Span struct {
	ctx      context.Context
	span     trace.Span
	recorder *Recorder
	op       Attr
}

// StartSpan starts a new span for the named operation.
//
// The returned context carries the span, and must be passed to any logging
// or metrics calls made while the operation is in progress.
func (r *Recorder) StartSpan(
	ctx context.Context,
	name string,
	attrs ...Attr,
) (context.Context, *Span) {
	ctx, span := r.tracer.Start(
		ctx,
		name,
		trace.WithAttributes(asAttrKeyValues(attrs)...),
	)

	op := String("operation", name)
	r.operationCount(ctx, 1, op)
	r.operationsInFlightCount(ctx, 1, op)

	return ctx, &Span{ctx, span, r, op}
}

// SetAttributes adds attributes to the span.
func (s *Span) SetAttributes(attrs ...Attr) {
	s.span.SetAttributes(asAttrKeyValues(attrs)...)
}

// End completes the span.
func (s *Span) End() {
	s.recorder.operationsInFlightCount(s.ctx, -1, s.op)
	s.span.End()
}
