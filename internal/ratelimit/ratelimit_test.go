package ratelimit

import (
	"fmt"
	"testing"
	"time"
)

func newTestLimiter(max int, window time.Duration) (*FixedWindow, *time.Time) {
	l := NewFixedWindow(max, window)
	current := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestAllow_WithinLimit(t *testing.T) {
	l, _ := newTestLimiter(30, time.Minute)

	for i := 0; i < 30; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should have been admitted", i+1)
		}
	}
}

func TestAllow_Request31Rejected(t *testing.T) {
	l, _ := newTestLimiter(30, time.Minute)

	for i := 0; i < 30; i++ {
		l.Allow("1.2.3.4")
	}
	if l.Allow("1.2.3.4") {
		t.Error("31st request in the same window must be rejected")
	}
}

func TestAllow_NewWindowAfterExpiry(t *testing.T) {
	l, clock := newTestLimiter(30, time.Minute)

	for i := 0; i < 31; i++ {
		l.Allow("1.2.3.4")
	}
	*clock = clock.Add(61 * time.Second)

	if !l.Allow("1.2.3.4") {
		t.Error("first request of a fresh window must be admitted")
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	if !l.Allow("1.1.1.1") {
		t.Fatal("first client should be admitted")
	}
	if l.Allow("1.1.1.1") {
		t.Error("first client should now be limited")
	}
	if !l.Allow("2.2.2.2") {
		t.Error("second client must have its own window")
	}
}

func TestAllow_UnknownClientAlwaysAdmitted(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	for i := 0; i < 100; i++ {
		if !l.Allow(UnknownClient) {
			t.Fatal("unknown clients must always be admitted")
		}
	}
}

func TestPrune_DropsExpiredEntries(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	for i := 0; i < 1100; i++ {
		l.Allow(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	*clock = clock.Add(2 * time.Minute)

	// All previous windows expired; the next insert prunes them.
	l.Allow("fresh-client")

	l.mu.Lock()
	size := len(l.records)
	l.mu.Unlock()
	if size != 1 {
		t.Errorf("expected table pruned to 1 entry, got %d", size)
	}
}
