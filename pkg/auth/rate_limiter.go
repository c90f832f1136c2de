package auth

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter provides rate limiting functionality
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// SlidingWindowLimiter implements sliding window rate limiting
type SlidingWindowLimiter struct {
	mu         sync.RWMutex
	windows    map[string]*window
	limit      int
	windowSize time.Duration
}

type window struct {
	requests []time.Time
	mu       sync.Mutex
}

// NewSlidingWindowLimiter creates a new sliding window rate limiter
func NewSlidingWindowLimiter(limit int, windowSize time.Duration) *SlidingWindowLimiter {
	limiter := &SlidingWindowLimiter{
		windows:    make(map[string]*window),
		limit:      limit,
		windowSize: windowSize,
	}

	go limiter.cleanup()

	return limiter
}

// Allow checks if a request is allowed
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	w, exists := l.windows[key]
	if !exists {
		w = &window{
			requests: make([]time.Time, 0),
		}
		l.windows[key] = w
	}
	l.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-l.windowSize)

	// Drop requests that have slid out of the window
	valid := w.requests[:0]
	for _, reqTime := range w.requests {
		if reqTime.After(windowStart) {
			valid = append(valid, reqTime)
		}
	}
	w.requests = valid

	if len(w.requests) >= l.limit {
		return false, nil
	}

	w.requests = append(w.requests, now)
	return true, nil
}

// Reset resets the rate limit for a key
func (l *SlidingWindowLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.windows, key)
	return nil
}

// cleanup removes idle windows periodically so the map does not grow
// unbounded under churning IPs
func (l *SlidingWindowLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-l.windowSize * 2)
		l.mu.Lock()
		for key, w := range l.windows {
			w.mu.Lock()
			idle := len(w.requests) == 0 || w.requests[len(w.requests)-1].Before(cutoff)
			w.mu.Unlock()
			if idle {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// IPRateLimiter wraps a rate limiter for IP-based limiting
type IPRateLimiter struct {
	limiter RateLimiter
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(requestsPerMinute int) *IPRateLimiter {
	return &IPRateLimiter{
		limiter: NewSlidingWindowLimiter(requestsPerMinute, time.Minute),
	}
}

// Allow checks if a request from an IP is allowed
func (l *IPRateLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	return l.limiter.Allow(ctx, fmt.Sprintf("ip:%s", ip))
}

// WriteThrottle limits reputation-bearing writes (votes, accepts) per
// user more tightly than the general request limit, so a script cannot
// farm reputation inside the broader allowance.
type WriteThrottle struct {
	limiter RateLimiter
}

// NewWriteThrottle creates a per-user throttle for write operations
func NewWriteThrottle(writesPerMinute int) *WriteThrottle {
	return &WriteThrottle{
		limiter: NewSlidingWindowLimiter(writesPerMinute, time.Minute),
	}
}

// Allow checks if a write from a user is allowed
func (t *WriteThrottle) Allow(ctx context.Context, userID string) (bool, error) {
	return t.limiter.Allow(ctx, fmt.Sprintf("write:%s", userID))
}
