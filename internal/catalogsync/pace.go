package catalogsync

import (
	"context"
	"time"
)

// DefaultDelay spaces out consecutive API writes to stay under rate limits.
const DefaultDelay = 200 * time.Millisecond

// Counts is the outcome of a batch of API writes.
type Counts struct {
	Succeeded int
	Failed    int
}

// wait sleeps for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
