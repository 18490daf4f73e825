package dataservice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/petal-labs/dialog/core"
	"github.com/petal-labs/dialog/internal/normalize"
)

// defaultHTTPClient builds a client that honours the configured proxy and does
// not keep connections alive between calls.
func defaultHTTPClient(cfg *core.Configuration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableKeepAlives = true
	if cfg.Proxy != nil {
		transport.Proxy = http.ProxyURL(cfg.Proxy)
	}
	return &http.Client{Transport: transport}
}

// buildHeaders constructs the headers shared by text and voice requests.
func (s *Service) buildHeaders(extra map[string]string) http.Header {
	headers := make(http.Header)
	headers.Set("Authorization", s.config.APIKey.BearerToken())
	headers.Set("Accept", "application/json")
	for key, value := range extra {
		headers.Add(key, value)
	}
	return headers
}

// exchange sends req and hands the response to fn. The response body is
// closed exactly once on every path, including when fn fails.
func (s *Service) exchange(req *http.Request, fn func(*http.Response) (string, error)) (string, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return fn(resp)
}

// doTextRequest posts a JSON body and returns the raw response text. An error
// status with a body returns that body so the normalizer can decode the
// service error; an error status without one is reported as unavailable.
func (s *Service) doTextRequest(ctx context.Context, endpoint, body string, headers map[string]string) (string, error) {
	s.log.Debug().Str("body", normalize.CollapseNewlines(body)).Msg("request json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		s.log.Error().Err(err).Str("endpoint", endpoint).Msg("malformed endpoint")
		return "", normalize.InvalidArgument("wrong configuration: " + err.Error())
	}
	req.Header = s.buildHeaders(headers)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	raw, err := s.exchange(req, func(resp *http.Response) (string, error) {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		if resp.StatusCode >= http.StatusBadRequest {
			if len(data) == 0 {
				return "", fmt.Errorf("http status %s with no body", resp.Status)
			}
			s.log.Debug().Int("status", resp.StatusCode).
				Str("body", normalize.CollapseNewlines(string(data))).
				Msg("error response")
		}
		return string(data), nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("can't make request to the service")
		return "", normalize.Unavailable(err)
	}
	return raw, nil
}
