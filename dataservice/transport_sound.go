package dataservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/petal-labs/dialog/internal/normalize"
)

// Multipart field names expected by the query endpoint.
const (
	requestField  = "request"
	voiceField    = "voiceData"
	voiceFilename = "voice.wav"
)

// statusFailure is an error status that arrived without a body.
type statusFailure struct {
	code   int
	status string
}

func (e *statusFailure) Error() string {
	return "http status " + e.status
}

// doSoundRequest uploads the JSON request and the voice stream as a two-part
// multipart body and returns the raw response text. The audio is streamed
// through a pipe; the writer goroutine always finishes before return.
func (s *Service) doSoundRequest(ctx context.Context, voice io.Reader, body string, headers map[string]string) (string, error) {
	endpoint := s.config.QuestionURL(s.context.SessionID())
	s.log.Debug().Str("endpoint", endpoint).Msg("connecting")
	s.log.Debug().Str("body", normalize.CollapseNewlines(body)).Msg("request json")

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		pr.Close()
		s.log.Error().Err(err).Str("endpoint", endpoint).Msg("malformed endpoint")
		return "", normalize.InvalidArgument("wrong configuration: " + err.Error())
	}
	req.Header = s.buildHeaders(headers)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var soundLog *soundLog
	if s.config.WriteSoundLog {
		soundLog = s.openSoundLog()
	}

	written := make(chan error, 1)
	go func() {
		var tee io.Writer
		if soundLog != nil {
			tee = soundLog
		}
		err := writeMultipart(mw, body, voice, tee)
		pw.CloseWithError(err)
		written <- err
	}()

	raw, err := s.exchange(req, func(resp *http.Response) (string, error) {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		if resp.StatusCode >= http.StatusBadRequest {
			if len(data) == 0 {
				return "", &statusFailure{code: resp.StatusCode, status: resp.Status}
			}
			s.log.Debug().Int("status", resp.StatusCode).
				Str("body", normalize.CollapseNewlines(string(data))).
				Msg("error response")
		}
		return string(data), nil
	})

	// Unblock the writer if the exchange ended before the body was consumed.
	pr.Close()
	writeErr := <-written
	soundLog.finish(writeErr == nil)

	if err != nil {
		var sf *statusFailure
		if errors.As(err, &sf) {
			s.log.Error().Int("status", sf.code).Msg("service returned an empty error response")
			return "", normalize.StatusError(sf.code, sf.status)
		}
		s.log.Error().Err(err).Msg("can't make request to the service")
		return "", normalize.Unavailable(err)
	}
	return raw, nil
}

// writeMultipart writes exactly two parts: the request field, then the voice
// file. When tee is non-nil the audio is copied to it as it streams.
func writeMultipart(mw *multipart.Writer, body string, voice io.Reader, tee io.Writer) error {
	if err := mw.WriteField(requestField, body); err != nil {
		return fmt.Errorf("failed to write request field: %w", err)
	}

	part, err := mw.CreateFormFile(voiceField, voiceFilename)
	if err != nil {
		return fmt.Errorf("failed to create voice part: %w", err)
	}

	src := voice
	if tee != nil {
		src = io.TeeReader(voice, tee)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to copy voice data: %w", err)
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return nil
}
