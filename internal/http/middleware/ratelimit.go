package middleware

import (
	"sync"
	"time"
)

// Limiter throttles repeated operations per key. The apply endpoint uses
// it to absorb double-clicks before they ever reach the store.
type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count int
	until time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windows: make(map[string]*window)}
}

func (r *RateLimiter) Allow(key string, limit int, windowSize time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	w, ok := r.windows[key]
	if !ok || now.After(w.until) {
		r.windows[key] = &window{count: 1, until: now.Add(windowSize)}
		return true
	}
	if w.count >= limit {
		return false
	}
	w.count++
	return true
}
