package dataservice

import (
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/petal-labs/dialog/core"
)

const (
	testKey      = "test-key"
	testSession  = "session-123"
	testTimezone = "Europe/Berlin"
)

// newTestService creates a service pointed at baseURL with a fixed session and timezone.
func newTestService(t *testing.T, baseURL string, opts ...Option) *Service {
	t.Helper()

	cfg := core.NewConfiguration(testKey, core.LanguageEnglish, core.WithBaseURL(baseURL))
	all := append([]Option{
		WithServiceContext(core.NewServiceContext(testSession)),
		WithTimezone(func() string { return testTimezone }),
	}, opts...)

	s, err := New(cfg, all...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

// countingTransport records how many times each response body is closed.
type countingTransport struct {
	base http.RoundTripper

	mu     sync.Mutex
	bodies []*countingBody
}

func newCountingTransport() *countingTransport {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.DisableKeepAlives = true
	return &countingTransport{base: base}
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	body := &countingBody{ReadCloser: resp.Body}
	c.mu.Lock()
	c.bodies = append(c.bodies, body)
	c.mu.Unlock()
	resp.Body = body
	return resp, nil
}

// closeCounts returns the close count of every response seen so far.
func (c *countingTransport) closeCounts() []int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := make([]int32, len(c.bodies))
	for i, b := range c.bodies {
		counts[i] = b.closes.Load()
	}
	return counts
}

type countingBody struct {
	io.ReadCloser
	closes atomic.Int32
}

func (b *countingBody) Close() error {
	b.closes.Add(1)
	return b.ReadCloser.Close()
}

// recordingHook is a telemetry hook that records events.
type recordingHook struct {
	mu     sync.Mutex
	starts []core.RequestStartEvent
	ends   []core.RequestEndEvent
}

func (h *recordingHook) OnRequestStart(e core.RequestStartEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts = append(h.starts, e)
}

func (h *recordingHook) OnRequestEnd(e core.RequestEndEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ends = append(h.ends, e)
}

// errReader fails on the first read.
type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
