// Package ratelimiter limits how often a caller may perform an operation.
package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiter counts calls per key in fixed windows. The zero limit allows
// everything.
type RateLimiter struct {
	limit    int           // calls allowed per key per window
	interval time.Duration // window length
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count     int
	lastReset time.Time
}

// NewRateLimiter returns a limiter allowing limit calls per key per interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow records a call for key and reports whether it is within the limit.
// When it is not, retryAfter is the time left in the current window.
func (rl *RateLimiter) Allow(key string) (ok bool, retryAfter time.Duration) {
	if rl.limit <= 0 {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	w, found := rl.windows[key]
	if !found {
		w = &window{lastReset: now}
		rl.windows[key] = w
	}
	// reset once the interval has passed
	if now.Sub(w.lastReset) >= rl.interval {
		w.count = 0
		w.lastReset = now
	}

	if w.count >= rl.limit {
		return false, rl.interval - now.Sub(w.lastReset)
	}
	w.count++
	return true, 0
}

// sweep drops expired windows so idle keys do not accumulate.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}
