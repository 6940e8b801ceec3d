package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "agile-task"

// SpanContext pairs a span with the context that carries it.
type SpanContext struct {
	ctx  context.Context
	span trace.Span
}

// StartSpan starts a child span of whatever trace ctx already carries.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) *SpanContext {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, opts...)
	return &SpanContext{ctx: ctx, span: span}
}

// StartSpanFromTraceID continues a trace that crossed a process boundary
// (the API server publishes the trace ID alongside each workspace event).
// An empty or malformed trace ID starts a fresh root span.
//
//	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.record_event")
//	defer sc.End()
//	ctx = sc.Context()
func StartSpanFromTraceID(ctx context.Context, traceIDStr string, name string, opts ...trace.SpanStartOption) *SpanContext {
	if traceIDStr == "" {
		return StartSpan(ctx, name, opts...)
	}

	traceID, err := trace.TraceIDFromHex(traceIDStr)
	if err != nil {
		return StartSpan(ctx, name, opts...)
	}

	remote := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})

	opts = append(opts, trace.WithLinks(trace.Link{SpanContext: remote}))
	ctx = trace.ContextWithRemoteSpanContext(ctx, remote)
	return StartSpan(ctx, name, opts...)
}

func (sc *SpanContext) Context() context.Context {
	return sc.ctx
}

// End completes the span. Calling it more than once is harmless.
func (sc *SpanContext) End() {
	if sc.span != nil {
		sc.span.End()
	}
}

// RecordError records err on the span and marks the span as failed.
func (sc *SpanContext) RecordError(err error) {
	if sc.span != nil && err != nil {
		sc.span.RecordError(err)
		sc.span.SetStatus(codes.Error, err.Error())
	}
}

// TraceID returns the hex trace ID carried by ctx, or "" when there is none.
func TraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
