package core

import (
	"errors"
	"fmt"
)

// Kind classifies a failure returned by the data service.
type Kind int

const (
	// KindInvalidArgument reports bad caller input such as a nil request.
	KindInvalidArgument Kind = iota + 1
	// KindEmptyResponse reports that the service returned no body.
	KindEmptyResponse
	// KindMalformedResponse reports a body that could not be decoded.
	KindMalformedResponse
	// KindServiceError reports a structured error status from the service.
	KindServiceError
	// KindServiceUnavailable reports a transport failure with no usable body.
	KindServiceUnavailable
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindEmptyResponse:
		return "empty response"
	case KindMalformedResponse:
		return "malformed response"
	case KindServiceError:
		return "service error"
	case KindServiceUnavailable:
		return "service unavailable"
	default:
		return "unknown"
	}
}

// Sentinel errors for classification.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrEmptyResponse      = errors.New("empty response")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrServiceError       = errors.New("service error")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Sentinel returns the sentinel error matching the kind.
func (k Kind) Sentinel() error {
	switch k {
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindEmptyResponse:
		return ErrEmptyResponse
	case KindMalformedResponse:
		return ErrMalformedResponse
	case KindServiceError:
		return ErrServiceError
	case KindServiceUnavailable:
		return ErrServiceUnavailable
	default:
		return nil
	}
}

// Error is the single failure type surfaced by the data service.
// Response is set only for KindServiceError.
type Error struct {
	Kind     Kind
	Message  string
	Response *Response
	Err      error
}

// NewError creates an Error of the given kind wrapping an optional cause.
func NewError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// NewServiceError creates a KindServiceError carrying the error response.
func NewServiceError(resp *Response) *Error {
	msg := "service returned an error"
	if resp != nil && resp.Status != nil {
		msg = resp.Status.String()
	}
	return &Error{Kind: KindServiceError, Message: msg, Response: resp}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dialog: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("dialog: %s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.Sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Status returns the service status carried by a service error, if any.
func (e *Error) Status() *Status {
	if e.Response == nil {
		return nil
	}
	return e.Response.Status
}

// Code returns the service status code, or 0 when none is available.
func (e *Error) Code() int {
	if s := e.Status(); s != nil {
		return s.Code
	}
	return 0
}

// ErrorType returns the service error type, or "" when none is available.
func (e *Error) ErrorType() string {
	if s := e.Status(); s != nil {
		return s.ErrorType
	}
	return ""
}

// ErrorDetails returns the service error details, or "" when none are available.
func (e *Error) ErrorDetails() string {
	if s := e.Status(); s != nil {
		return s.ErrorDetails
	}
	return ""
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
