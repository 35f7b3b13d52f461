package transport

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultUserAgent identifies the client to the listings API.
const DefaultUserAgent = "estate-listings/1.0 (+https://github.com/lukman83/estate-listings)"

// Transport is an http.RoundTripper that applies the outbound pipeline:
// RequestID → UserAgent → RobotsCheck → RateLimiter → Proxy → Send
type Transport struct {
	Base        http.RoundTripper
	UserAgent   string
	Robots      *RobotsChecker
	RateLimiter *rate.Limiter
	Proxy       *ProxyRotator
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())

	// 1. Tag the request
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	ua := t.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	// 2. Check robots.txt
	if t.Robots != nil {
		allowed, err := t.Robots.IsAllowed(req.Context(), ua, req.URL.String())
		if err == nil && !allowed {
			return nil, fmt.Errorf("blocked by robots.txt: %s", req.URL.Path)
		}
	}

	// 3. Wait for rate limiter token
	if t.RateLimiter != nil {
		if err := t.RateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	// 4. Route through proxy if configured
	transport := t.Base
	if t.Proxy != nil {
		transport = t.Proxy.Next().Transport()
	}
	if transport == nil {
		transport = http.DefaultTransport
	}

	return transport.RoundTrip(req)
}
