package translate

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/lokvaani/commentengine/internal/langdetect"
)

// RateLimited throttles calls to a provider
type RateLimited struct {
	next    Translator
	limiter *rate.Limiter
}

// NewRateLimited allows rps requests per second with the given burst
func NewRateLimited(next Translator, rps float64, burst int) *RateLimited {
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Translate implements Translator
func (r *RateLimited) Translate(ctx context.Context, text string, source langdetect.Language) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("translation rate limit: %w", err)
	}
	return r.next.Translate(ctx, text, source)
}
