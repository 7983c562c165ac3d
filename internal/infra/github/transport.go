package github

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitedTransport waits on a shared token bucket before every
// outbound request.
type RateLimitedTransport struct {
	Base    http.RoundTripper
	Limiter *rate.Limiter
}

// NewRateLimitedTransport returns base unchanged when rps is not positive.
func NewRateLimitedTransport(base http.RoundTripper, rps float64, burst int) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if rps <= 0 {
		return base
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedTransport{Base: base, Limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("github rate limiter: %w", err)
	}
	return t.Base.RoundTrip(req)
}
