package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/petal-labs/dialog/core"
)

func TestHookCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	hook := NewHook(reg)

	start := time.Now()
	events := []core.RequestEndEvent{
		{Operation: core.OperationTextQuery, Start: start, End: start.Add(100 * time.Millisecond)},
		{Operation: core.OperationTextQuery, Start: start, End: start.Add(200 * time.Millisecond)},
		{Operation: core.OperationTextQuery, Start: start, End: start, Err: core.NewError(core.KindServiceUnavailable, "down", nil)},
		{Operation: core.OperationVoiceQuery, Start: start, End: start, Err: core.NewServiceError(&core.Response{Status: core.StatusFromResponseCode(400)})},
	}
	for _, e := range events {
		hook.OnRequestStart(core.RequestStartEvent{Operation: e.Operation, Start: e.Start})
		hook.OnRequestEnd(e)
	}

	tests := []struct {
		op, outcome string
		want        float64
	}{
		{"text_query", OutcomeOK, 2},
		{"text_query", "service_unavailable", 1},
		{"voice_query", "service_error", 1},
		{"voice_query", OutcomeOK, 0},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(hook.requests.WithLabelValues(tt.op, tt.outcome))
		if got != tt.want {
			t.Errorf("requests{%s,%s} = %v, want %v", tt.op, tt.outcome, got, tt.want)
		}
	}

	if got := testutil.ToFloat64(hook.inFlight.WithLabelValues("text_query")); got != 0 {
		t.Errorf("in flight after completion = %v, want 0", got)
	}
	if got := testutil.CollectAndCount(hook.duration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestHookInFlight(t *testing.T) {
	hook := NewHook(prometheus.NewRegistry())

	hook.OnRequestStart(core.RequestStartEvent{Operation: core.OperationUploadEntities})
	hook.OnRequestStart(core.RequestStartEvent{Operation: core.OperationUploadEntities})
	if got := testutil.ToFloat64(hook.inFlight.WithLabelValues("upload_entities")); got != 2 {
		t.Errorf("in flight = %v, want 2", got)
	}

	hook.OnRequestEnd(core.RequestEndEvent{Operation: core.OperationUploadEntities})
	if got := testutil.ToFloat64(hook.inFlight.WithLabelValues("upload_entities")); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{core.NewError(core.KindInvalidArgument, "nil", nil), "invalid_argument"},
		{core.NewError(core.KindEmptyResponse, "empty", nil), "empty_response"},
		{core.NewError(core.KindMalformedResponse, "bad", nil), "malformed_response"},
		{errors.New("other"), "unknown"},
	}
	for _, tt := range tests {
		if got := outcome(tt.err); got != tt.want {
			t.Errorf("outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestNewHookRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	hook := NewHook(reg)
	hook.OnRequestEnd(core.RequestEndEvent{Operation: core.OperationResetContexts})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{"dialog_requests_total", "dialog_request_duration_seconds", "dialog_requests_in_flight"} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}
