package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedProvider throttles outbound model calls with a shared token
// bucket so that concurrent users cannot exceed the backend's quota.
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a Provider with a token-bucket limiter.
func WithRateLimit(p Provider, cfg RateConfig) Provider {
	return &RateLimitedProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

func (r *RateLimitedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitedProvider) ModelID() string {
	return r.inner.ModelID()
}
