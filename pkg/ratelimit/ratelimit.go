// Package ratelimit throttles outgoing API requests per namespace.
//
// The DEX publishes per-endpoint budgets (1, 5 or 10 requests per second per
// IP). Each namespace gets its own leaky bucket so a burst of depth queries
// cannot starve account lookups.
package ratelimit

import (
	"context"
	"sync"

	"go.uber.org/ratelimit"
)

// DefaultRate is the budget for namespaces that were never registered.
const DefaultRate = 1

// Limiter holds one bucket per namespace. The zero value is not usable;
// call New.
type Limiter struct {
	mu          sync.Mutex
	rates       map[string]int
	buckets     map[string]ratelimit.Limiter
	defaultRate int
}

// New returns a limiter whose unregistered namespaces allow defaultRate
// requests per second. A non-positive defaultRate means DefaultRate.
func New(defaultRate int) *Limiter {
	if defaultRate <= 0 {
		defaultRate = DefaultRate
	}
	return &Limiter{
		rates:       make(map[string]int),
		buckets:     make(map[string]ratelimit.Limiter),
		defaultRate: defaultRate,
	}
}

// Register sets the per-second budget of a namespace. A non-positive rps
// removes the limit for that namespace.
func (l *Limiter) Register(namespace string, rps int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rates[namespace] = rps
	if rps <= 0 {
		l.buckets[namespace] = ratelimit.NewUnlimited()
		return
	}
	l.buckets[namespace] = ratelimit.New(rps)
}

// Registered reports whether namespace has a bucket.
func (l *Limiter) Registered(namespace string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.buckets[namespace]
	return ok
}

// Rate returns the budget that applies to namespace.
func (l *Limiter) Rate(namespace string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if r, ok := l.rates[namespace]; ok {
		return r
	}
	return l.defaultRate
}

func (l *Limiter) bucket(namespace string) ratelimit.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[namespace]
	if !ok {
		b = ratelimit.New(l.defaultRate)
		l.buckets[namespace] = b
		l.rates[namespace] = l.defaultRate
	}
	return b
}

// Limit blocks until the namespace has budget for one more request or ctx
// is done. On cancellation the slot is still consumed in the background.
func (l *Limiter) Limit(ctx context.Context, namespace string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b := l.bucket(namespace)

	done := make(chan struct{})
	go func() {
		b.Take()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
