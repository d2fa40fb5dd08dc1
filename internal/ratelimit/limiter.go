package ratelimit

import (
	"sync"
	"time"
)

// Limiter is an in-process sliding-window request limiter keyed by actor ID.
// It is advisory, best-effort fairness for command usage, not a distributed
// guarantee.
type Limiter struct {
	maxRequests int
	window      time.Duration

	mu       sync.Mutex
	requests map[int64][]time.Time
	now      func() time.Time
}

// New returns a Limiter allowing maxRequests per actor within the trailing
// window.
func New(maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make(map[int64][]time.Time),
		now:         time.Now,
	}
}

// IsLimited reports whether the actor has exhausted its budget. Entries older
// than the window are pruned on every check.
func (l *Limiter) IsLimited(actorID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	retained := l.prune(actorID)
	return len(retained) >= l.maxRequests
}

// Record notes a request for the actor. Call it only after IsLimited returned
// false and immediately before performing the bounded action, so concurrent
// requests from the same actor cannot be undercounted.
func (l *Limiter) Record(actorID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.requests[actorID] = append(l.requests[actorID], l.now())
}

// TimeUntilReset returns how long until the actor's oldest retained request
// falls outside the window, freeing one slot. Zero when the actor has no
// retained requests.
func (l *Limiter) TimeUntilReset(actorID int64) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	retained := l.prune(actorID)
	if len(retained) == 0 {
		return 0
	}

	oldest := retained[0]
	for _, ts := range retained[1:] {
		if ts.Before(oldest) {
			oldest = ts
		}
	}

	remaining := oldest.Add(l.window).Sub(l.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Purge drops actors whose every entry has aged out of the window. The map is
// otherwise unbounded for the process lifetime; callers with long-lived
// deployments should invoke this periodically.
func (l *Limiter) Purge() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for actorID := range l.requests {
		if len(l.prune(actorID)) == 0 {
			delete(l.requests, actorID)
		}
	}
}

// prune discards entries older than now-window and stores the survivors.
// Callers must hold l.mu.
func (l *Limiter) prune(actorID int64) []time.Time {
	cutoff := l.now().Add(-l.window)

	retained := l.requests[actorID][:0]
	for _, ts := range l.requests[actorID] {
		if ts.After(cutoff) {
			retained = append(retained, ts)
		}
	}
	l.requests[actorID] = retained
	return retained
}
