package skateshare

import (
	"sync"
	"time"
)

// RateLimiter is a per-key sliding-window limiter. It guards admin login
// attempts and post submissions, keyed by client IP.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a RateLimiter that allows max attempts per window.
// Expired keys are swept once per window until Stop is called.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		stop:     make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *RateLimiter) run() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// Stop ends the background sweep.
func (l *RateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *RateLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key := range l.attempts {
		l.recent(key)
	}
}

// recent drops the attempts of key that fell out of the window and returns
// the rest. Keys left without attempts are removed. l.mu must be held.
func (l *RateLimiter) recent(key string) []time.Time {
	cutoff := time.Now().Add(-l.window)
	hits := l.attempts[key]
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	hits = hits[i:]
	if len(hits) == 0 {
		delete(l.attempts, key)
		return nil
	}
	l.attempts[key] = hits
	return hits
}

// Allow checks that key is under the limit and records the attempt.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.recent(key)) >= l.max {
		return false
	}
	l.attempts[key] = append(l.attempts[key], time.Now())
	return true
}

// Check reports whether key is under the limit without recording an attempt.
func (l *RateLimiter) Check(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.recent(key)) < l.max
}

// Record adds a failed attempt for key.
func (l *RateLimiter) Record(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts[key] = append(l.recent(key), time.Now())
}
