package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/velosh/paddockwire/internal/domain"
)

const (
	// StaleTTL is the age past which a cached entry is considered stale.
	// Stale entries are still served; staleness only schedules a refresh.
	StaleTTL = 6 * time.Hour

	// BackgroundRefreshTTL is measured against the last successful write,
	// tracked separately from the entry timestamp.
	BackgroundRefreshTTL = 2 * time.Hour

	// RateLimitWindow is the minimum gap between network fetches the
	// manager itself will issue.
	RateLimitWindow = 30 * time.Second

	// AutoRefreshInterval drives the periodic silent re-pull.
	AutoRefreshInterval = 5 * time.Minute

	requestTimeout = 15 * time.Second

	cacheKey     = "news_cache_v1"
	lastFetchKey = "news_last_fetch_ts"
	rateLimitKey = "news_rate_limit_ts"
)

// CacheEntry is the single versioned payload persisted under cacheKey.
type CacheEntry struct {
	Timestamp int64             `json:"timestamp"` // unix milliseconds
	Items     []domain.NewsItem `json:"items"`
}

// Manager serves cached stories synchronously and refreshes them from the
// news endpoint in the background. At most one fetch is in flight at a time;
// concurrent callers get the cache instead of a second request.
type Manager struct {
	store    *Store
	endpoint string
	client   *http.Client
	now      func() time.Time

	mu       sync.Mutex
	inFlight bool
}

func NewManager(store *Store, endpoint string) *Manager {
	return &Manager{
		store:    store,
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
		now:      time.Now,
	}
}

// Cached returns the stored items without any network activity. A missing,
// corrupt or empty entry is a miss and yields nil; an empty cached list is
// never trusted.
func (m *Manager) Cached() []domain.NewsItem {
	entry, ok := m.readEntry()
	if !ok {
		return nil
	}
	return entry.Items
}

// Fetch returns stories, preferring the cache. With a usable cache it returns
// immediately and may kick off a background refresh; without one it fetches
// synchronously unless the rate-limit window or the in-flight guard says
// otherwise. Fetch never returns an error and never returns nil.
func (m *Manager) Fetch(ctx context.Context) []domain.NewsItem {
	if entry, ok := m.readEntry(); ok {
		if (m.isStale(entry) || m.shouldBackgroundRefresh()) && m.allowFetch() && m.beginFlight() {
			go m.backgroundFetch()
		}
		return entry.Items
	}

	if !m.allowFetch() || !m.beginFlight() {
		return orEmpty(m.Cached())
	}
	defer m.endFlight()

	items, err := m.fetchRemote(ctx)
	if err != nil || len(items) == 0 {
		if err != nil {
			slog.Debug("news fetch failed, serving cache", "error", err)
		}
		return orEmpty(m.Cached())
	}

	m.writeCache(items)
	return items
}

// StartAutoRefresh silently re-pulls through Fetch every AutoRefreshInterval
// until ctx is cancelled, picking up cache writes made elsewhere.
func (m *Manager) StartAutoRefresh(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(AutoRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Fetch(ctx)
			}
		}
	}()
}

func (m *Manager) readEntry() (CacheEntry, bool) {
	raw, err := m.store.Get(cacheKey)
	if err != nil || raw == "" {
		return CacheEntry{}, false
	}

	var entry CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		// Corrupt state is a miss, never an error.
		return CacheEntry{}, false
	}
	if len(entry.Items) == 0 {
		return CacheEntry{}, false
	}
	return entry, true
}

func (m *Manager) isStale(entry CacheEntry) bool {
	age := m.now().UnixMilli() - entry.Timestamp
	return age > StaleTTL.Milliseconds()
}

func (m *Manager) shouldBackgroundRefresh() bool {
	raw, err := m.store.Get(lastFetchKey)
	if err != nil || raw == "" {
		return true
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return true
	}
	return m.now().UnixMilli()-ts > BackgroundRefreshTTL.Milliseconds()
}

// allowFetch reports whether the rate-limit window has elapsed and, when it
// has, stamps the window so the next caller waits.
func (m *Manager) allowFetch() bool {
	now := m.now().UnixMilli()
	if raw, err := m.store.Get(rateLimitKey); err == nil && raw != "" {
		if ts, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if now-ts < RateLimitWindow.Milliseconds() {
				return false
			}
		}
	}
	if err := m.store.Set(rateLimitKey, strconv.FormatInt(now, 10)); err != nil {
		slog.Debug("failed to stamp rate-limit window", "error", err)
	}
	return true
}

func (m *Manager) beginFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return false
	}
	m.inFlight = true
	return true
}

func (m *Manager) endFlight() {
	m.mu.Lock()
	m.inFlight = false
	m.mu.Unlock()
}

// backgroundFetch refreshes the cache and is silent on failure.
func (m *Manager) backgroundFetch() {
	defer m.endFlight()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	items, err := m.fetchRemote(ctx)
	if err != nil || len(items) == 0 {
		return
	}
	m.writeCache(items)
}

func (m *Manager) fetchRemote(ctx context.Context) ([]domain.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("news endpoint returned %d", resp.StatusCode)
	}

	var items []domain.NewsItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding news response: %w", err)
	}
	return items, nil
}

// writeCache persists the entry and stamps the last successful write. An
// empty list is never cached.
func (m *Manager) writeCache(items []domain.NewsItem) {
	if len(items) == 0 {
		return
	}

	now := m.now().UnixMilli()
	raw, err := json.Marshal(CacheEntry{Timestamp: now, Items: items})
	if err != nil {
		slog.Debug("failed to encode cache entry", "error", err)
		return
	}
	if err := m.store.Set(cacheKey, string(raw)); err != nil {
		slog.Debug("failed to write cache entry", "error", err)
		return
	}
	if err := m.store.Set(lastFetchKey, strconv.FormatInt(now, 10)); err != nil {
		slog.Debug("failed to stamp last fetch", "error", err)
	}
}

func orEmpty(items []domain.NewsItem) []domain.NewsItem {
	if items == nil {
		return []domain.NewsItem{}
	}
	return items
}
