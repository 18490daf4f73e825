package otel

import (
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/petal-labs/dialog/core"
)

func newRecordingHook() (*Hook, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return NewHook(tp), sr
}

func attrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestHookRecordsSuccessSpan(t *testing.T) {
	hook, sr := newRecordingHook()

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	end := start.Add(150 * time.Millisecond)

	hook.OnRequestStart(core.RequestStartEvent{Operation: core.OperationTextQuery, Language: core.LanguageEnglish, Start: start})
	if got := len(sr.Ended()); got != 0 {
		t.Fatalf("spans after start = %d, want 0", got)
	}

	hook.OnRequestEnd(core.RequestEndEvent{
		Operation: core.OperationTextQuery,
		Language:  core.LanguageEnglish,
		Start:     start,
		End:       end,
		Status:    200,
	})

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	span := spans[0]

	if span.Name() != "dialog.text_query" {
		t.Errorf("Name() = %q, want %q", span.Name(), "dialog.text_query")
	}
	if !span.StartTime().Equal(start) {
		t.Errorf("StartTime() = %v, want %v", span.StartTime(), start)
	}
	if !span.EndTime().Equal(end) {
		t.Errorf("EndTime() = %v, want %v", span.EndTime(), end)
	}
	if span.Status().Code != codes.Ok {
		t.Errorf("Status().Code = %v, want Ok", span.Status().Code)
	}

	a := attrs(span)
	if got := a[AttrOperation].AsString(); got != "text_query" {
		t.Errorf("%s = %q, want %q", AttrOperation, got, "text_query")
	}
	if got := a[AttrLanguage].AsString(); got != "en" {
		t.Errorf("%s = %q, want %q", AttrLanguage, got, "en")
	}
	if got := a[AttrStatus].AsInt64(); got != 200 {
		t.Errorf("%s = %d, want 200", AttrStatus, got)
	}
	if _, ok := a[AttrErrorKind]; ok {
		t.Errorf("%s should not be set on success", AttrErrorKind)
	}
}

func TestHookRecordsErrorSpan(t *testing.T) {
	hook, sr := newRecordingHook()

	start := time.Now()
	err := core.NewServiceError(&core.Response{Status: core.StatusFromResponseCode(401)})
	hook.OnRequestEnd(core.RequestEndEvent{
		Operation: core.OperationVoiceQuery,
		Language:  core.LanguageGerman,
		Start:     start,
		End:       start.Add(time.Second),
		Status:    401,
		Err:       err,
	})

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	span := spans[0]

	if span.Status().Code != codes.Error {
		t.Errorf("Status().Code = %v, want Error", span.Status().Code)
	}
	if span.Status().Description != err.Error() {
		t.Errorf("Status().Description = %q, want %q", span.Status().Description, err.Error())
	}

	a := attrs(span)
	if got := a[AttrErrorKind].AsString(); got != "service error" {
		t.Errorf("%s = %q, want %q", AttrErrorKind, got, "service error")
	}
	if got := a[AttrStatus].AsInt64(); got != 401 {
		t.Errorf("%s = %d, want 401", AttrStatus, got)
	}

	var sawException bool
	for _, ev := range span.Events() {
		if ev.Name == "exception" {
			sawException = true
		}
	}
	if !sawException {
		t.Error("expected an exception event on the span")
	}
}

func TestHookForeignErrorHasNoKind(t *testing.T) {
	hook, sr := newRecordingHook()

	start := time.Now()
	hook.OnRequestEnd(core.RequestEndEvent{
		Operation: core.OperationResetContexts,
		Start:     start,
		End:       start,
		Err:       errors.New("boom"),
	})

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	a := attrs(spans[0])
	if _, ok := a[AttrErrorKind]; ok {
		t.Errorf("%s should not be set for foreign errors", AttrErrorKind)
	}
	if _, ok := a[AttrStatus]; ok {
		t.Errorf("%s should not be set when status is unknown", AttrStatus)
	}
}
