package transport

import (
	"net/http"
	"time"

	"shop-admin/internal/logger"
)

// Logging records method, path, status and duration of every request that
// passes through it. Bodies are never logged; they carry credentials.
type Logging struct {
	Next http.RoundTripper
}

func (t *Logging) RoundTrip(r *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}
	start := time.Now()
	resp, err := next.RoundTrip(r)
	duration := time.Since(start)

	evt := logger.L.Debug()
	if err != nil {
		evt = logger.L.Warn().Err(err)
	}
	evt = evt.Str("method", r.Method).Str("host", r.URL.Host).Str("path", r.URL.Path).
		Str("request_id", r.Header.Get("X-Request-ID")).Dur("duration", duration)
	if resp != nil {
		evt = evt.Int("status", resp.StatusCode)
	}
	evt.Msg("request")
	return resp, err
}

// NewClient returns an http.Client that logs through Logging. A zero timeout
// leaves the transport defaults in charge.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout, Transport: &Logging{Next: http.DefaultTransport}}
}
