package logging

import (
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that logs every outbound request with
// HTTPRequestContext. Requests that fail before a response is received are
// logged with status code 0.
type Transport struct {
	Next http.RoundTripper
}

// NewTransport wraps next, or http.DefaultTransport when next is nil.
func NewTransport(next http.RoundTripper) *Transport {
	return &Transport{Next: next}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}

	start := time.Now()
	resp, err := next.RoundTrip(req)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if err != nil {
		HTTPRequestContext(req.Context(), req.Method, req.URL.String(), status, time.Since(start), "error", err.Error())
		return resp, err
	}
	HTTPRequestContext(req.Context(), req.Method, req.URL.String(), status, time.Since(start))
	return resp, nil
}
