// Package otel adapts the capybara telemetry hook to OpenTelemetry
// tracing. Each request becomes a span named after its operation, with
// the database and collection as attributes and the final HTTP status
// and error recorded on completion.
package otel

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/capybaradb/capybaradb-go/capybara"
)

// spanKey correlates a start event with its end event. The hook
// interface carries no request token, so identity is the operation
// target plus the start timestamp.
type spanKey struct {
	operation  string
	database   string
	collection string
	start      time.Time
}

// Hook implements capybara.TelemetryHook by opening a span on request
// start and ending it on request end.
type Hook struct {
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[spanKey]trace.Span
}

// NewHook creates a Hook that records spans with the given tracer.
func NewHook(tracer trace.Tracer) *Hook {
	return &Hook{
		tracer: tracer,
		spans:  make(map[spanKey]trace.Span),
	}
}

// Compile-time check that Hook implements TelemetryHook.
var _ capybara.TelemetryHook = (*Hook)(nil)

// OnRequestStart opens a span for the request.
func (h *Hook) OnRequestStart(e capybara.RequestStartEvent) {
	_, span := h.tracer.Start(context.Background(), "capybaradb."+e.Operation,
		trace.WithTimestamp(e.Start),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "capybaradb"),
			attribute.String("db.operation", e.Operation),
			attribute.String("db.name", e.Database),
			attribute.String("db.collection", e.Collection),
		),
	)

	h.mu.Lock()
	h.spans[spanKey{e.Operation, e.Database, e.Collection, e.Start}] = span
	h.mu.Unlock()
}

// OnRequestEnd records the outcome and ends the span opened by the
// matching start event. End events with no matching start are ignored.
func (h *Hook) OnRequestEnd(e capybara.RequestEndEvent) {
	key := spanKey{e.Operation, e.Database, e.Collection, e.Start}

	h.mu.Lock()
	span, ok := h.spans[key]
	if ok {
		delete(h.spans, key)
	}
	h.mu.Unlock()

	if !ok {
		return
	}

	if e.Status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", e.Status))
	}

	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, e.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End(trace.WithTimestamp(e.End))
}
