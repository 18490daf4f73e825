package dataservice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/petal-labs/dialog/core"
	"github.com/petal-labs/dialog/internal/normalize"
)

// ErrConfigRequired is returned by New when the configuration is nil.
var ErrConfigRequired = errors.New("dataservice: configuration is required")

// Service sends text and voice queries to the service for one session.
// Service is safe for concurrent use; every call owns its own HTTP exchange.
type Service struct {
	config     *core.Configuration
	context    *core.ServiceContext
	httpClient *http.Client
	log        zerolog.Logger
	telemetry  core.TelemetryHook
	timezone   func() string
}

// New creates a service for the given configuration. The configuration is
// cloned, so later changes to cfg have no effect. A new session id is
// generated unless WithServiceContext is supplied.
func New(cfg *core.Configuration, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	cfg = cfg.Clone()
	if cfg.Language == "" {
		cfg.Language = core.DefaultLanguage
	}

	s := &Service{
		config:    cfg,
		log:       zerolog.Nop(),
		telemetry: core.NoopTelemetryHook{},
		timezone:  localTimezone,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.context == nil {
		s.context = core.NewServiceContext("")
	}
	if s.httpClient == nil {
		s.httpClient = defaultHTTPClient(cfg)
	}
	s.log = s.log.With().
		Str("component", "dataservice").
		Str("session_id", s.context.SessionID()).
		Logger()

	return s, nil
}

// Context returns the session context used for every request.
func (s *Service) Context() *core.ServiceContext {
	return s.context
}

// Request sends a caller-built query. The request is copied before the
// language, session id and timezone are filled in. extras may be nil.
func (s *Service) Request(ctx context.Context, req *core.Request, extras *core.RequestExtras) (*core.Response, error) {
	return s.observe(core.OperationTextQuery, func() (*core.Response, error) {
		return s.request(ctx, req, extras)
	})
}

// TextQuery sends a single text query. extras may be nil.
func (s *Service) TextQuery(ctx context.Context, query string, extras *core.RequestExtras) (*core.Response, error) {
	return s.Request(ctx, core.NewTextRequest(query), extras)
}

// VoiceQuery sends recorded audio for recognition and interpretation.
// The call blocks until the whole stream has been uploaded and answered;
// do not call it from a latency-sensitive goroutine. A nil extras is
// replaced by an empty RequestExtras.
func (s *Service) VoiceQuery(ctx context.Context, voice io.Reader, extras *core.RequestExtras) (*core.Response, error) {
	return s.observe(core.OperationVoiceQuery, func() (*core.Response, error) {
		return s.voiceRequest(ctx, voice, extras)
	})
}

// VoiceQueryWithContexts sends audio together with conversation contexts.
func (s *Service) VoiceQueryWithContexts(ctx context.Context, voice io.Reader, contexts []core.Context) (*core.Response, error) {
	return s.VoiceQuery(ctx, voice, &core.RequestExtras{Contexts: contexts})
}

// ResetContexts forgets all contexts of the session. It reports whether the
// reset succeeded and never returns an error; failures are logged.
func (s *Service) ResetContexts(ctx context.Context) bool {
	resp, err := s.observe(core.OperationResetContexts, func() (*core.Response, error) {
		req := core.NewTextRequest(core.ResetContextsQuery)
		req.SetResetContexts(true)
		return s.request(ctx, req, nil)
	})
	if err != nil {
		s.log.Error().Err(err).Msg("exception while contexts clean")
		return false
	}
	return !resp.IsError()
}

// UploadUserEntity uploads a single user entity.
func (s *Service) UploadUserEntity(ctx context.Context, entity core.Entity) (*core.Response, error) {
	return s.UploadUserEntities(ctx, []core.Entity{entity})
}

// UploadUserEntities uploads user entities for the session. An empty list is
// rejected before any network call.
func (s *Service) UploadUserEntities(ctx context.Context, entities []core.Entity) (*core.Response, error) {
	return s.observe(core.OperationUploadEntities, func() (*core.Response, error) {
		if len(entities) == 0 {
			return nil, normalize.InvalidArgument("empty entities list")
		}

		body, err := json.Marshal(entities)
		if err != nil {
			return nil, normalize.InvalidArgument("entities cannot be encoded: " + err.Error())
		}

		raw, err := s.doTextRequest(ctx, s.config.UserEntitiesURL(s.context.SessionID()), string(body), nil)
		if err != nil {
			return nil, err
		}
		return s.parseResponse(raw)
	})
}

func (s *Service) request(ctx context.Context, req *core.Request, extras *core.RequestExtras) (*core.Response, error) {
	if req == nil {
		return nil, normalize.InvalidArgument("request argument must not be nil")
	}
	s.log.Debug().Msg("start request")

	r := *req
	headers := s.prepareRequest(&r, extras)

	body, err := json.Marshal(&r)
	if err != nil {
		return nil, normalize.InvalidArgument("request cannot be encoded: " + err.Error())
	}

	raw, err := s.doTextRequest(ctx, s.config.QuestionURL(s.context.SessionID()), string(body), headers)
	if err != nil {
		return nil, err
	}
	return s.parseResponse(raw)
}

func (s *Service) voiceRequest(ctx context.Context, voice io.Reader, extras *core.RequestExtras) (*core.Response, error) {
	if voice == nil {
		return nil, normalize.InvalidArgument("voice stream must not be nil")
	}
	s.log.Debug().Msg("start voice request")

	if extras == nil {
		extras = &core.RequestExtras{}
	}
	req := &core.Request{}
	headers := s.prepareRequest(req, extras)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, normalize.InvalidArgument("request cannot be encoded: " + err.Error())
	}

	raw, err := s.doSoundRequest(ctx, voice, string(body), headers)
	if err != nil {
		return nil, err
	}
	return s.parseResponse(raw)
}

// observe reports the operation to the telemetry hook.
func (s *Service) observe(op core.Operation, fn func() (*core.Response, error)) (*core.Response, error) {
	start := time.Now()
	s.telemetry.OnRequestStart(core.RequestStartEvent{
		Operation: op,
		Language:  s.config.Language,
		Start:     start,
	})

	resp, err := fn()

	end := core.RequestEndEvent{
		Operation: op,
		Language:  s.config.Language,
		Start:     start,
		End:       time.Now(),
		Err:       err,
	}
	switch {
	case resp != nil && resp.Status != nil:
		end.Status = resp.Status.Code
	case err != nil:
		var e *core.Error
		if errors.As(err, &e) {
			end.Status = e.Code()
		}
	}
	s.telemetry.OnRequestEnd(end)

	return resp, err
}
