package core

import (
	"fmt"
	"net/http"
	"strings"
)

// Status is the service-reported outcome of a call.
type Status struct {
	Code         int    `json:"code"`
	ErrorType    string `json:"errorType,omitempty"`
	ErrorDetails string `json:"errorDetails,omitempty"`
	ErrorID      string `json:"errorID,omitempty"`
}

// IsError reports whether the status code denotes a failure.
func (s *Status) IsError() bool {
	return s != nil && s.Code >= 400
}

// String returns a compact description of the status.
func (s *Status) String() string {
	if s == nil {
		return "<nil>"
	}
	if s.ErrorDetails != "" {
		return fmt.Sprintf("%d %s: %s", s.Code, s.ErrorType, s.ErrorDetails)
	}
	if s.ErrorType != "" {
		return fmt.Sprintf("%d %s", s.Code, s.ErrorType)
	}
	return fmt.Sprintf("%d", s.Code)
}

var errorTypes = map[int]string{
	http.StatusOK:                  "success",
	http.StatusBadRequest:          "bad_request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not_found",
	http.StatusMethodNotAllowed:    "not_allowed",
	http.StatusNotAcceptable:       "not_acceptable",
	http.StatusConflict:            "conflict",
	http.StatusTooManyRequests:     "too_many_requests",
	http.StatusInternalServerError: "internal_server_error",
	http.StatusBadGateway:          "bad_gateway",
	http.StatusServiceUnavailable:  "service_unavailable",
	http.StatusGatewayTimeout:      "gateway_timeout",
}

// StatusFromResponseCode builds a status for an HTTP response code when the
// service did not return a structured body. Unknown codes derive their error
// type from the HTTP status text.
func StatusFromResponseCode(code int) *Status {
	errorType, ok := errorTypes[code]
	if !ok {
		text := http.StatusText(code)
		if text == "" {
			errorType = "unknown"
		} else {
			errorType = strings.ReplaceAll(strings.ToLower(text), " ", "_")
		}
	}
	return &Status{Code: code, ErrorType: errorType}
}
