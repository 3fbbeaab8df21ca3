// Package ratelimit enforces a minimum interval between successive calls so
// that outbound API usage stays within a requests-per-minute budget.
//
// The limiter is a single bottleneck shared by all callers going through the
// same instance. It is not safe for unsynchronized use from multiple
// goroutines: the check-and-update of the last-call timestamp is not atomic,
// so callers sharing an instance across goroutines must add their own lock.
package ratelimit

import (
	"fmt"
	"log/slog"
	"time"
)

// Limiter throttles a sequence of calls to at most N per minute.
type Limiter struct {
	requestsPerMinute int
	minInterval       time.Duration
	last              time.Time

	// Injected for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a limiter allowing requestsPerMinute calls per minute.
// A zero or negative budget is a configuration error.
func New(requestsPerMinute int) (*Limiter, error) {
	if requestsPerMinute <= 0 {
		return nil, fmt.Errorf("ratelimit: requests per minute must be positive, got %d", requestsPerMinute)
	}
	return &Limiter{
		requestsPerMinute: requestsPerMinute,
		minInterval:       time.Minute / time.Duration(requestsPerMinute),
		now:               time.Now,
		sleep:             time.Sleep,
	}, nil
}

// RequestsPerMinute returns the configured budget.
func (l *Limiter) RequestsPerMinute() int {
	return l.requestsPerMinute
}

// MinInterval returns the enforced minimum spacing between calls.
func (l *Limiter) MinInterval() time.Duration {
	return l.minInterval
}

// Throttle blocks until at least MinInterval has elapsed since the previous
// throttled call, then records the current time as the new baseline. The
// first call on a fresh limiter never blocks.
func (l *Limiter) Throttle() {
	if !l.last.IsZero() {
		elapsed := l.now().Sub(l.last)
		if elapsed < l.minInterval {
			wait := l.minInterval - elapsed
			slog.Debug("rate limiting outbound call",
				slog.Duration("wait", wait),
				slog.Int("requests_per_minute", l.requestsPerMinute))
			l.sleep(wait)
		}
	}
	l.last = l.now()
}

// Wrap returns a function that throttles every invocation of fn.
func (l *Limiter) Wrap(fn func() error) func() error {
	return func() error {
		l.Throttle()
		return fn()
	}
}
