package source

import (
	"context"
	"sync"
	"time"
)

// Pacer serializes calls to one upstream across the whole process with a
// minimum spacing. It is one shared counter, not a per-instance field:
// concurrent route lookups for different airports all wait on the same
// clock. A strict delay, not a token bucket: there is no burst credit.
type Pacer struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks until the minimum interval since the previous request has
// passed, then claims the slot. The lock is held across the sleep so waiters
// drain in arrival order.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last.IsZero() {
		p.last = time.Now()
		return nil
	}

	elapsed := time.Since(p.last)
	if elapsed >= p.interval {
		p.last = time.Now()
		return nil
	}

	select {
	case <-time.After(p.interval - elapsed):
		p.last = time.Now()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
