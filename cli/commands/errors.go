package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petal-labs/dialog/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitService    = 2
	ExitNetwork    = 3
)

// handleServiceError maps a data service failure to an exit code and, in
// JSON mode, writes a structured error to stderr.
func (a *App) handleServiceError(err error) error {
	var e *core.Error
	if !errors.As(err, &e) {
		a.outputErrorJSON("error", err.Error(), nil)
		return exitWithCode(ExitService, err)
	}

	a.outputErrorJSON(errorType(e.Kind), e.Message, e.Status())

	switch e.Kind {
	case core.KindInvalidArgument:
		return exitWithCode(ExitValidation, err)
	case core.KindServiceUnavailable:
		return exitWithCode(ExitNetwork, err)
	default:
		return exitWithCode(ExitService, err)
	}
}

func errorType(k core.Kind) string {
	switch k {
	case core.KindInvalidArgument:
		return "validation_error"
	case core.KindEmptyResponse:
		return "empty_response"
	case core.KindMalformedResponse:
		return "malformed_response"
	case core.KindServiceError:
		return "service_error"
	case core.KindServiceUnavailable:
		return "network_error"
	default:
		return "error"
	}
}

func (a *App) outputErrorJSON(errType, message string, status *core.Status) {
	if !a.jsonOutput {
		return
	}

	body := map[string]any{
		"type":    errType,
		"message": message,
	}
	if status != nil {
		body["code"] = status.Code
		body["errorType"] = status.ErrorType
		if status.ErrorDetails != "" {
			body["errorDetails"] = status.ErrorDetails
		}
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"error": body}); err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", message)
	}
}

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}
