// Package otel reports data service calls as OpenTelemetry spans.
//
// Usage:
//
//	tp := sdktrace.NewTracerProvider(...)
//	svc := dataservice.New(cfg, dataservice.WithTelemetry(otel.NewHook(tp)))
package otel

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/dialog/core"
)

const instrumentationName = "github.com/petal-labs/dialog/contrib/otel"

// Span attribute keys.
const (
	AttrOperation = attribute.Key("dialog.operation")
	AttrLanguage  = attribute.Key("dialog.language")
	AttrStatus    = attribute.Key("dialog.status_code")
	AttrErrorKind = attribute.Key("dialog.error_kind")
)

// Hook implements core.TelemetryHook. Spans are recorded when a call ends,
// backdated to the call's start time, so no state is held between events.
type Hook struct {
	tracer trace.Tracer
}

// NewHook returns a hook that records spans with a tracer from tp.
func NewHook(tp trace.TracerProvider) *Hook {
	return &Hook{tracer: tp.Tracer(instrumentationName)}
}

// OnRequestStart does nothing; see Hook.
func (h *Hook) OnRequestStart(core.RequestStartEvent) {}

// OnRequestEnd records one client span for the finished call.
func (h *Hook) OnRequestEnd(e core.RequestEndEvent) {
	_, span := h.tracer.Start(context.Background(), "dialog."+string(e.Operation),
		trace.WithTimestamp(e.Start),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			AttrOperation.String(string(e.Operation)),
			AttrLanguage.String(string(e.Language)),
		),
	)

	if e.Status != 0 {
		span.SetAttributes(AttrStatus.Int(e.Status))
	}
	if e.Err != nil {
		var de *core.Error
		if errors.As(e.Err, &de) {
			span.SetAttributes(AttrErrorKind.String(de.Kind.String()))
		}
		span.RecordError(e.Err, trace.WithTimestamp(e.End))
		span.SetStatus(codes.Error, e.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End(trace.WithTimestamp(e.End))
}

var _ core.TelemetryHook = (*Hook)(nil)
