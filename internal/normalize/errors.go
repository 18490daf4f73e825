// Package normalize provides shared error and diagnostic normalization helpers
// for the data service.
package normalize

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/petal-labs/dialog/core"
)

var newlines = regexp.MustCompile(`[\r\n]+`)

// CollapseNewlines replaces each run of CR/LF characters with a single space so
// a JSON body fits on one log line.
func CollapseNewlines(s string) string {
	return newlines.ReplaceAllString(s, " ")
}

// InvalidArgument reports bad caller input.
func InvalidArgument(message string) error {
	return core.NewError(core.KindInvalidArgument, message, nil)
}

// EmptyResponse reports a missing response body.
func EmptyResponse() error {
	return core.NewError(core.KindEmptyResponse,
		"empty response from service, check configuration and network connection", nil)
}

// MalformedResponse wraps decode failures. err may be nil when the body
// decoded to nothing.
func MalformedResponse(err error) error {
	if err == nil {
		return core.NewError(core.KindMalformedResponse, "response parsed as null", nil)
	}
	return core.NewError(core.KindMalformedResponse, "wrong service answer format", err)
}

// Unavailable wraps transport failures that produced no usable body.
func Unavailable(err error) error {
	return core.NewError(core.KindServiceUnavailable,
		"can't make request to the service, check connection settings and access token", err)
}

// StatusError builds a service error from an HTTP status line when the server
// sent no body. reason is the status phrase, e.g. "401 Unauthorized".
func StatusError(code int, reason string) error {
	status := core.StatusFromResponseCode(code)
	status.ErrorDetails = ReasonPhrase(code, reason)
	return core.NewServiceError(&core.Response{Status: status})
}

// ReasonPhrase extracts the phrase from an http.Response.Status value,
// falling back to the standard text for code.
func ReasonPhrase(code int, status string) string {
	if _, phrase, ok := strings.Cut(status, " "); ok && phrase != "" {
		return phrase
	}
	return http.StatusText(code)
}
