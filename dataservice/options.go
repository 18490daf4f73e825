package dataservice

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/petal-labs/dialog/core"
)

// Option configures a Service.
type Option func(*Service)

// WithServiceContext uses an existing session instead of generating one.
func WithServiceContext(sc *core.ServiceContext) Option {
	return func(s *Service) {
		if sc != nil {
			s.context = sc
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
// The configured proxy is not applied to a custom client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
// Bodies are logged at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.log = logger
	}
}

// WithTelemetry sets a telemetry hook for request lifecycle events.
func WithTelemetry(hook core.TelemetryHook) Option {
	return func(s *Service) {
		if hook != nil {
			s.telemetry = hook
		}
	}
}

// WithTimezone overrides how the timezone sent with each request is resolved.
func WithTimezone(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.timezone = fn
		}
	}
}
