package ratelimit

import (
	"sync"
	"time"
)

// window tracks request times within a rolling span. A limit of 0 means
// the window is unbounded.
type window struct {
	span  time.Duration
	limit int
	times []time.Time
}

// prune drops entries older than the window span.
func (w *window) prune(now time.Time) {
	cutoff := now.Add(-w.span)
	kept := w.times[:0]
	for _, t := range w.times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	w.times = kept
}

// full reports whether the window is at its limit.
func (w *window) full() bool {
	return w.limit > 0 && len(w.times) >= w.limit
}

// RateLimiter enforces rolling per-minute, per-hour and per-day request
// limits on the mutating API routes (create, status change, shortlist).
type RateLimiter struct {
	enabled bool
	windows []*window
	mu      sync.Mutex
}

// NewRateLimiter creates a rate limiter with the given limits. A limit
// of 0 disables that window.
func NewRateLimiter(requestsPerMinute, requestsPerHour, requestsPerDay int, enabled bool) *RateLimiter {
	return &RateLimiter{
		enabled: enabled,
		windows: []*window{
			{span: time.Minute, limit: requestsPerMinute},
			{span: time.Hour, limit: requestsPerHour},
			{span: 24 * time.Hour, limit: requestsPerDay},
		},
	}
}

// AllowRequest records a request if every window has room and reports
// whether it was allowed.
func (rl *RateLimiter) AllowRequest() bool {
	if !rl.enabled {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for _, w := range rl.windows {
		w.prune(now)
		if w.full() {
			return false
		}
	}
	for _, w := range rl.windows {
		w.times = append(w.times, now)
	}
	return true
}

// Stats contains rate limiter statistics
type Stats struct {
	Enabled             bool `json:"enabled"`
	RequestsLastMinute  int  `json:"requests_last_minute"`
	RequestsLastHour    int  `json:"requests_last_hour"`
	RequestsLastDay     int  `json:"requests_last_day"`
	LimitPerMinute      int  `json:"limit_per_minute"`
	LimitPerHour        int  `json:"limit_per_hour"`
	LimitPerDay         int  `json:"limit_per_day"`
	RemainingThisMinute int  `json:"remaining_this_minute"`
	RemainingThisHour   int  `json:"remaining_this_hour"`
	RemainingThisDay    int  `json:"remaining_this_day"`
}

// GetStats returns current rate limiter statistics
func (rl *RateLimiter) GetStats() Stats {
	if !rl.enabled {
		return Stats{Enabled: false}
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for _, w := range rl.windows {
		w.prune(now)
	}

	minute, hour, day := rl.windows[0], rl.windows[1], rl.windows[2]
	return Stats{
		Enabled:             true,
		RequestsLastMinute:  len(minute.times),
		RequestsLastHour:    len(hour.times),
		RequestsLastDay:     len(day.times),
		LimitPerMinute:      minute.limit,
		LimitPerHour:        hour.limit,
		LimitPerDay:         day.limit,
		RemainingThisMinute: max(0, minute.limit-len(minute.times)),
		RemainingThisHour:   max(0, hour.limit-len(hour.times)),
		RemainingThisDay:    max(0, day.limit-len(day.times)),
	}
}

// Reset clears all tracked requests (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for _, w := range rl.windows {
		w.times = nil
	}
}
