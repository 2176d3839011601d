// Package ratelimit provides per-client admission control for the news
// endpoint.
package ratelimit

import (
	"sync"
	"time"
)

// UnknownClient is the key used when no client IP could be resolved. It is
// always admitted: environments without a reverse proxy cannot attribute
// requests, and failing open there beats locking everyone out.
const UnknownClient = "unknown"

// Limiter decides whether a request from the given client key is admitted.
// Implementations must be safe for concurrent use and must not assume
// single-process affinity; the in-memory FixedWindow below is only correct
// for single-instance deployments and can be swapped for a shared store.
type Limiter interface {
	Allow(key string) bool
}

type record struct {
	count   int
	resetAt time.Time
}

// FixedWindow admits up to max requests per key per window. The window table
// lives in process memory and is pruned opportunistically once it grows past
// maxKeys, dropping entries whose window already expired.
type FixedWindow struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	maxKeys int
	records map[string]*record
	now     func() time.Time
}

func NewFixedWindow(max int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		max:     max,
		window:  window,
		maxKeys: 1000,
		records: make(map[string]*record),
		now:     time.Now,
	}
}

func (l *FixedWindow) Allow(key string) bool {
	if key == UnknownClient {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.records) > l.maxKeys {
		l.prune(now)
	}

	rec, ok := l.records[key]
	if !ok || now.After(rec.resetAt) {
		l.records[key] = &record{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	if rec.count >= l.max {
		return false
	}
	rec.count++
	return true
}

func (l *FixedWindow) prune(now time.Time) {
	for key, rec := range l.records {
		if now.After(rec.resetAt) {
			delete(l.records, key)
		}
	}
}
