package authenticator

import (
	"net/http"
	"time"
)

// NewHTTPClient returns the client used for every provider call. Headers are
// added to each outbound request; base defaults to http.DefaultTransport.
func NewHTTPClient(timeout time.Duration, headers map[string]string, base http.RoundTripper) *http.Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	if base == nil {
		base = http.DefaultTransport
	}

	var rt http.RoundTripper = base
	if len(headers) > 0 {
		h := make(map[string]string, len(headers))
		for k, v := range headers {
			h[k] = v
		}
		rt = &headerTransport{headers: h, next: base}
	}

	return &http.Client{Timeout: timeout, Transport: rt}
}

type headerTransport struct {
	headers map[string]string
	next    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.next.RoundTrip(r)
}
