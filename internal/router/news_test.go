package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velosh/paddockwire/internal/aggregator"
	"github.com/velosh/paddockwire/internal/apperr"
	"github.com/velosh/paddockwire/internal/domain"
	"github.com/velosh/paddockwire/internal/middleware"
	"github.com/velosh/paddockwire/internal/ratelimit"
)

type stubFetcher struct {
	items []domain.RawNewsItem
	delay time.Duration
}

func (s *stubFetcher) Fetch(ctx context.Context, src domain.Source) []domain.RawNewsItem {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.delay):
		}
	}
	return s.items
}

func relevantItem() domain.RawNewsItem {
	return domain.RawNewsItem{
		ID:          "the-race-0-1",
		Title:       "Verstappen takes pole for the Dutch Grand Prix",
		Summary:     "A dominant lap in qualifying at Zandvoort.",
		URL:         "https://the-race.com/formula-1/pole",
		SourceName:  "The Race",
		Image:       "https://cdn.the-race.com/pole.jpg",
		PublishedAt: "29/08/2026",
		Published:   time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
	}
}

func newTestRouter(t *testing.T, fetcher aggregator.Fetcher, max int) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	e.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: []string{"https://paddockwire.example"}}))

	sources := []domain.Source{{Name: "The Race", RSSURL: "https://the-race.com/feed", BaseURL: "https://the-race.com"}}
	agg := aggregator.New(sources, fetcher)
	r := NewNewsRouter(e, agg, ratelimit.NewFixedWindow(max, time.Minute))
	r.Bind()
	return e
}

func getNews(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNewsHandler_ReturnsItemsWithCacheHeader(t *testing.T) {
	e := newTestRouter(t, &stubFetcher{items: []domain.RawNewsItem{relevantItem()}}, 30)

	rec := getNews(e, "203.0.113.7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s-maxage=3600, stale-while-revalidate=86400", rec.Header().Get("Cache-Control"))

	var items []domain.NewsItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Verstappen takes pole for the Dutch Grand Prix", items[0].Title)
	assert.Equal(t, "The Race", items[0].SourceName)
}

func TestNewsHandler_EmptyPipelineIsStillOK(t *testing.T) {
	e := newTestRouter(t, &stubFetcher{}, 30)

	rec := getNews(e, "203.0.113.7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestNewsHandler_RejectsQueryParameters(t *testing.T) {
	e := newTestRouter(t, &stubFetcher{items: []domain.RawNewsItem{relevantItem()}}, 30)

	req := httptest.NewRequest(http.MethodGet, "/api/news?foo=1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request parameters"}`, rec.Body.String())
}

func TestNewsHandler_MethodNotAllowed(t *testing.T) {
	e := newTestRouter(t, &stubFetcher{}, 30)

	req := httptest.NewRequest(http.MethodPost, "/api/news", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
}

func TestNewsHandler_RateLimitKicksInPerClient(t *testing.T) {
	e := newTestRouter(t, &stubFetcher{}, 30)

	for i := 0; i < 30; i++ {
		rec := getNews(e, "203.0.113.7")
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := getNews(e, "203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many requests"}`, rec.Body.String())

	// A different client is unaffected.
	other := getNews(e, "198.51.100.9")
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestNewsHandler_RateLimitCheckedBeforePipeline(t *testing.T) {
	slow := &stubFetcher{delay: 50 * time.Millisecond}
	e := newTestRouter(t, slow, 1)

	require.Equal(t, http.StatusOK, getNews(e, "203.0.113.7").Code)

	start := time.Now()
	rec := getNews(e, "203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Less(t, time.Since(start), 50*time.Millisecond, "rejection must not run the pipeline")
}

func TestNewsHandler_TimeoutMapsTo504(t *testing.T) {
	slow := &stubFetcher{delay: time.Second}

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	sources := []domain.Source{{Name: "The Race", RSSURL: "https://the-race.com/feed", BaseURL: "https://the-race.com"}}
	r := NewNewsRouter(e, aggregator.New(sources, slow), ratelimit.NewFixedWindow(30, time.Minute))
	// Shrink the budget so the stub outlives it.
	r.timeout = 20 * time.Millisecond
	r.Bind()

	rec := getNews(e, "203.0.113.7")
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.JSONEq(t, `{"error":"Request timeout"}`, rec.Body.String())
}

func TestNewsHandler_PreflightPassesThroughCORS(t *testing.T) {
	e := newTestRouter(t, &stubFetcher{}, 30)

	req := httptest.NewRequest(http.MethodOptions, "/api/news", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestClientIP_HeaderPriority(t *testing.T) {
	newCtx := func(mutate func(*http.Request)) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
		mutate(req)
		return echo.New().NewContext(req, httptest.NewRecorder())
	}

	t.Run("forwarded for wins and takes first hop", func(t *testing.T) {
		c := newCtx(func(r *http.Request) {
			r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
			r.Header.Set("X-Real-Ip", "198.51.100.9")
		})
		assert.Equal(t, "203.0.113.7", clientIP(c))
	})

	t.Run("real ip beats cf header", func(t *testing.T) {
		c := newCtx(func(r *http.Request) {
			r.Header.Set("X-Real-Ip", "198.51.100.9")
			r.Header.Set("Cf-Connecting-Ip", "192.0.2.4")
		})
		assert.Equal(t, "198.51.100.9", clientIP(c))
	})

	t.Run("falls back to socket address", func(t *testing.T) {
		c := newCtx(func(r *http.Request) { r.RemoteAddr = "192.0.2.4:51234" })
		assert.Equal(t, "192.0.2.4", clientIP(c))
	})

	t.Run("unknown when nothing is usable", func(t *testing.T) {
		c := newCtx(func(r *http.Request) { r.RemoteAddr = "" })
		assert.Equal(t, ratelimit.UnknownClient, clientIP(c))
	})
}
