package ratelimit

import (
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(d)
}

func newTestLimiter(maxRequests int, window time.Duration) (*Limiter, *fakeClock) {
	clock := newFakeClock()
	l := New(maxRequests, window)
	l.now = clock.Now
	return l, clock
}

func TestLimiter_AllowsUpToMax(t *testing.T) {
	l, _ := newTestLimiter(5, 600*time.Second)
	const actor = int64(42)

	for i := 0; i < 5; i++ {
		if l.IsLimited(actor) {
			t.Fatalf("request %d unexpectedly limited", i+1)
		}
		l.Record(actor)
	}

	if !l.IsLimited(actor) {
		t.Error("sixth check should report limited")
	}
}

func TestLimiter_WindowSlides(t *testing.T) {
	l, clock := newTestLimiter(5, 600*time.Second)
	const actor = int64(42)

	for i := 0; i < 5; i++ {
		l.Record(actor)
		clock.Advance(time.Second)
	}

	if !l.IsLimited(actor) {
		t.Fatal("actor should be limited after five requests")
	}

	// Oldest entry ages past the window; one slot frees up.
	clock.Advance(600 * time.Second)

	if l.IsLimited(actor) {
		t.Error("actor should no longer be limited after entries aged out")
	}
	if got := l.TimeUntilReset(actor); got != 0 {
		t.Errorf("TimeUntilReset = %v, want 0 after full reset", got)
	}
}

func TestLimiter_TimeUntilReset(t *testing.T) {
	l, clock := newTestLimiter(2, 10*time.Minute)
	const actor = int64(7)

	if got := l.TimeUntilReset(actor); got != 0 {
		t.Fatalf("TimeUntilReset with no entries = %v, want 0", got)
	}

	l.Record(actor)
	clock.Advance(3 * time.Minute)
	l.Record(actor)

	// Oldest entry is 3 minutes old, so 7 minutes remain.
	if got := l.TimeUntilReset(actor); got != 7*time.Minute {
		t.Errorf("TimeUntilReset = %v, want 7m", got)
	}

	clock.Advance(4 * time.Minute)
	if got := l.TimeUntilReset(actor); got != 3*time.Minute {
		t.Errorf("TimeUntilReset = %v, want 3m", got)
	}
}

func TestLimiter_ActorsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	l.Record(1)
	if !l.IsLimited(1) {
		t.Error("actor 1 should be limited")
	}
	if l.IsLimited(2) {
		t.Error("actor 2 should not be limited")
	}
}

func TestLimiter_Purge(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	l.Record(1)
	l.Record(2)
	clock.Advance(2 * time.Minute)
	l.Record(2)

	l.Purge()

	l.mu.Lock()
	_, hasIdle := l.requests[1]
	_, hasActive := l.requests[2]
	l.mu.Unlock()

	if hasIdle {
		t.Error("idle actor should have been purged")
	}
	if !hasActive {
		t.Error("active actor should survive purge")
	}
}

func TestLimiter_ConcurrentSameActor(t *testing.T) {
	l, _ := newTestLimiter(1000, time.Minute)
	const actor = int64(99)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				l.IsLimited(actor)
				l.Record(actor)
			}
		}()
	}
	wg.Wait()

	if !l.IsLimited(actor) {
		t.Error("actor should be limited after 1000 recorded requests")
	}
}
