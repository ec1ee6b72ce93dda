package rotation

import (
	"context"
	"testing"
	"time"
)

func TestCounterThresholdReset(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewStore(15)
	c := NewCounter(s, 3, true, start)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if r := c.Tick(ctx, start); r != "" {
			t.Fatalf("tick %d reset unexpectedly: %s", i, r)
		}
	}
	s.MarkUsed(keyP1Long, 0)
	if r := c.Tick(ctx, start); r != ResetThreshold {
		t.Fatalf("expected threshold reset, got %q", r)
	}
	if s.Len() != 0 {
		t.Error("expected store cleared")
	}
	if c.Count() != 1 {
		t.Errorf("expected count 1 after reset, got %d", c.Count())
	}
}

func TestCounterDailyReset(t *testing.T) {
	start := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	s := NewStore(15)
	c := NewCounter(s, 500, true, start)
	ctx := context.Background()

	c.Tick(ctx, start)
	s.MarkUsed(keyP1Long, 0)
	if r := c.Tick(ctx, start.Add(2*time.Minute)); r != ResetDaily {
		t.Fatalf("expected daily reset, got %q", r)
	}
	if s.Len() != 0 {
		t.Error("expected store cleared")
	}
	if r := c.Tick(ctx, start.Add(3*time.Minute)); r != "" {
		t.Errorf("expected no second reset on same day, got %q", r)
	}
}

func TestCounterDailyDisabled(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCounter(NewStore(15), 500, false, start)
	if r := c.Tick(context.Background(), start.AddDate(0, 0, 2)); r != "" {
		t.Errorf("expected no reset, got %q", r)
	}
}
