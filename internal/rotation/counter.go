package rotation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/pkg/logging"
	"github.com/lokvaani/commentengine/pkg/telemetry"
)

// Reset reasons reported by Counter.Tick
const (
	ResetDaily     = "daily"
	ResetThreshold = "threshold"
)

// Counter is the process-wide request counter driving global resets
type Counter struct {
	mu         sync.Mutex
	store      *Store
	count      int
	lastReset  time.Time
	resetAfter int
	daily      bool
	logger     *zap.Logger
}

// NewCounter creates a counter that clears store when a calendar day ends
// (if daily is set) or after resetAfter requests
func NewCounter(store *Store, resetAfter int, daily bool, now time.Time) *Counter {
	return &Counter{
		store:      store,
		lastReset:  now,
		resetAfter: resetAfter,
		daily:      daily,
		logger:     logging.WithComponent("rotation"),
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Tick applies the reset policy and counts one request. It returns the
// reset reason, or an empty string when nothing was reset.
func (c *Counter) Tick(ctx context.Context, now time.Time) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	reason := ""
	switch {
	case c.daily && !sameDay(c.lastReset, now):
		reason = ResetDaily
		c.lastReset = now
	case c.resetAfter > 0 && c.count >= c.resetAfter:
		reason = ResetThreshold
	}

	if reason != "" {
		c.store.ResetAll()
		c.count = 0
		telemetry.RecordRotationReset(ctx, reason)
		c.logger.Info("Rotation state reset", zap.String("reason", reason))
	}
	c.count++
	return reason
}

// Count returns the requests seen since the last reset
func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
