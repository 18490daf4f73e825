package dataservice

import (
	"encoding/json"

	"github.com/petal-labs/dialog/core"
	"github.com/petal-labs/dialog/internal/normalize"
)

// parseResponse decodes a raw body into a successful, cleaned response.
// An error status in the body is returned as a service error.
func (s *Service) parseResponse(raw string) (*core.Response, error) {
	if raw == "" {
		err := normalize.EmptyResponse()
		s.log.Error().Err(err).Msg("empty response")
		return nil, err
	}

	s.log.Debug().Str("body", normalize.CollapseNewlines(raw)).Msg("response json")

	var resp *core.Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		s.log.Error().Err(err).Msg("wrong service answer format")
		return nil, normalize.MalformedResponse(err)
	}
	if resp == nil {
		s.log.Error().Msg("response parsed as null")
		return nil, normalize.MalformedResponse(nil)
	}

	if resp.IsError() {
		err := core.NewServiceError(resp)
		s.log.Error().Err(err).Int("code", resp.Status.Code).Msg("service returned an error status")
		return nil, err
	}

	resp.Cleanup()
	return resp, nil
}
