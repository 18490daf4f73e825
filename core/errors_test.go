package core

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestErrorIs(t *testing.T) {
	kinds := []struct {
		kind     Kind
		sentinel error
	}{
		{KindInvalidArgument, ErrInvalidArgument},
		{KindEmptyResponse, ErrEmptyResponse},
		{KindMalformedResponse, ErrMalformedResponse},
		{KindServiceError, ErrServiceError},
		{KindServiceUnavailable, ErrServiceUnavailable},
	}
	all := []error{ErrInvalidArgument, ErrEmptyResponse, ErrMalformedResponse, ErrServiceError, ErrServiceUnavailable}

	for _, tt := range kinds {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := error(NewError(tt.kind, "boom", nil))
			for _, s := range all {
				if got, want := errors.Is(err, s), s == tt.sentinel; got != want {
					t.Errorf("errors.Is(%v, %v) = %v, want %v", err, s, got, want)
				}
			}
			if tt.kind.Sentinel() != tt.sentinel {
				t.Errorf("Sentinel() = %v, want %v", tt.kind.Sentinel(), tt.sentinel)
			}
		})
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	err := NewError(KindServiceUnavailable, "can't reach service", io.ErrUnexpectedEOF)
	wrapped := fmt.Errorf("text query: %w", err)

	if !errors.Is(wrapped, io.ErrUnexpectedEOF) {
		t.Error("errors.Is(wrapped, io.ErrUnexpectedEOF) = false, want true")
	}
	if !errors.Is(wrapped, ErrServiceUnavailable) {
		t.Error("errors.Is(wrapped, ErrServiceUnavailable) = false, want true")
	}
	if got := KindOf(wrapped); got != KindServiceUnavailable {
		t.Errorf("KindOf() = %v, want %v", got, KindServiceUnavailable)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  NewError(KindInvalidArgument, "request must not be nil", nil),
			want: "dialog: invalid argument: request must not be nil",
		},
		{
			name: "with cause",
			err:  NewError(KindMalformedResponse, "wrong service answer format", errors.New("unexpected end of JSON input")),
			want: "dialog: malformed response: wrong service answer format: unexpected end of JSON input",
		},
		{
			name: "service error",
			err: NewServiceError(&Response{Status: &Status{
				Code: 400, ErrorType: "bad_request", ErrorDetails: "query is empty",
			}}),
			want: "dialog: service error: 400 bad_request: query is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServiceErrorAccessors(t *testing.T) {
	resp := &Response{ID: "r-1", Status: &Status{Code: 401, ErrorType: "unauthorized", ErrorDetails: "bad key", ErrorID: "e-9"}}
	err := NewServiceError(resp)

	if err.Response != resp {
		t.Error("Response not retained")
	}
	if err.Code() != 401 {
		t.Errorf("Code() = %d, want 401", err.Code())
	}
	if err.ErrorType() != "unauthorized" {
		t.Errorf("ErrorType() = %q, want unauthorized", err.ErrorType())
	}
	if err.ErrorDetails() != "bad key" {
		t.Errorf("ErrorDetails() = %q, want %q", err.ErrorDetails(), "bad key")
	}
	if err.Status().ErrorID != "e-9" {
		t.Errorf("Status().ErrorID = %q, want e-9", err.Status().ErrorID)
	}
}

func TestErrorAccessorsWithoutResponse(t *testing.T) {
	err := NewError(KindEmptyResponse, "empty response", nil)
	if err.Status() != nil || err.Code() != 0 || err.ErrorType() != "" || err.ErrorDetails() != "" {
		t.Errorf("accessors = %v/%d/%q/%q, want zero values", err.Status(), err.Code(), err.ErrorType(), err.ErrorDetails())
	}
	if got := KindOf(errors.New("plain")); got != 0 {
		t.Errorf("KindOf(plain) = %v, want 0", got)
	}
}
