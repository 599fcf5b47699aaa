// Package ratelimit implements the advisory request limiter. The
// limiter is an explicitly passed capability: callers treat a nil
// limiter, or any limiter error, as "allow" so that limiter outages
// never block assessments.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Windowed counts requests per key in fixed windows, rejecting once a
// key exceeds its per-window budget.
type Windowed struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	counts map[string]*entry
	now    func() time.Time
}

type entry struct {
	count   int
	resetAt time.Time
}

// NewWindowed creates a limiter allowing limit requests per key per
// window. A limit of zero or below disables limiting.
func NewWindowed(limit int, window time.Duration) *Windowed {
	if window <= 0 {
		window = time.Minute
	}
	return &Windowed{
		limit:  limit,
		window: window,
		counts: make(map[string]*entry),
		now:    time.Now,
	}
}

// Allow reports whether one more request for key is within budget.
func (l *Windowed) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.counts[key]
	if !ok || now.After(e.resetAt) {
		l.counts[key] = &entry{count: 1, resetAt: now.Add(l.window)}
		return true, nil
	}
	if e.count >= l.limit {
		return false, nil
	}
	e.count++
	return true, nil
}
