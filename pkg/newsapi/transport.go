package newsapi

import (
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
)

// apiKeyTransport sets the X-Api-Key header on every request and logs the round trip
type apiKeyTransport struct {
	apiKey string
	next   http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrip must not modify the original request
	r := req.Clone(req.Context())
	if t.apiKey != "" {
		r.Header.Set("X-Api-Key", t.apiKey)
	}

	st := time.Now()
	resp, err := t.next.RoundTrip(r)
	if err != nil {
		lgr.Printf("[DEBUG] %s %s failed after %v: %v", r.Method, r.URL.Path, time.Since(st), err)
		return nil, err
	}
	lgr.Printf("[DEBUG] %s %s -> %d in %v", r.Method, r.URL.Path, resp.StatusCode, time.Since(st))
	return resp, nil
}
