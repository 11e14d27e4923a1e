package jisho

import (
	"context"
	"sync"
	"time"
)

// pacer is a blocking token bucket shared by all requests of a Provider.
// A nil pacer never waits.
type pacer struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// newPacer allows perMinute requests per minute with a burst of one.
// Returns nil when perMinute <= 0.
func newPacer(perMinute int) *pacer {
	if perMinute <= 0 {
		return nil
	}
	return &pacer{
		tokens:     1,
		maxTokens:  1,
		refillRate: float64(perMinute) / 60.0,
		lastRefill: time.Now(),
	}
}

// Wait blocks until a request may be sent or ctx is done.
func (p *pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	for {
		d := p.reserve()
		if d <= 0 {
			return nil
		}
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve takes a token if one is available and returns 0, otherwise it
// returns how long until the next token.
func (p *pacer) reserve() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	p.tokens += now.Sub(p.lastRefill).Seconds() * p.refillRate
	if p.tokens > p.maxTokens {
		p.tokens = p.maxTokens
	}
	p.lastRefill = now

	if p.tokens >= 1 {
		p.tokens--
		return 0
	}
	return time.Duration((1 - p.tokens) / p.refillRate * float64(time.Second))
}
