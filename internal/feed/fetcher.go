// Package feed retrieves and normalizes upstream RSS sources. Feeds are
// untrusted input: every text field is sanitized, every link validated
// absolute, and every failure degrades to zero items for that source.
package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/velosh/paddockwire/internal/domain"
	"github.com/velosh/paddockwire/internal/sanitize"
)

const (
	userAgent    = "PaddockWire News Aggregator"
	acceptHeader = "application/rss+xml, application/xml, text/xml, */*"

	// maxBodyBytes bounds how much of an upstream response is read.
	maxBodyBytes = 5 << 20
)

// Fetcher retrieves one source's feed and maps it to raw news items.
type Fetcher struct {
	client *http.Client
	parser *gofeed.Parser
	now    func() time.Time
}

// NewFetcher returns a Fetcher whose HTTP calls carry their own timeout,
// independent of the pipeline deadline.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		parser: gofeed.NewParser(),
		now:    time.Now,
	}
}

// Fetch returns the normalized items of one source. It never fails the
// caller: network errors, bad statuses, HTML error pages and XML parse
// failures all log a warning and yield an empty slice.
func (f *Fetcher) Fetch(ctx context.Context, src domain.Source) []domain.RawNewsItem {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.RSSURL, nil)
	if err != nil {
		slog.Warn("feed request build failed", "source", src.Name, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		slog.Warn("feed fetch failed", "source", src.Name, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("feed fetch bad status", "source", src.Name, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		slog.Warn("feed body read failed", "source", src.Name, "error", err)
		return nil
	}

	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "<!DOCTYPE") || strings.HasPrefix(text, "<html") {
		slog.Warn("feed returned HTML instead of XML", "source", src.Name)
		return nil
	}

	parsed, err := f.parser.ParseString(text)
	if err != nil {
		slog.Warn("feed parse failed", "source", src.Name, "error", err)
		return nil
	}

	fetchedAt := f.now().UnixMilli()
	items := make([]domain.RawNewsItem, 0, len(parsed.Items))
	for i, it := range parsed.Items {
		link := itemLink(it)
		if !strings.HasPrefix(link, "http") {
			// No resolvable absolute article link: drop the item entirely.
			continue
		}

		title := sanitize.Text(it.Title)
		if title == "" {
			title = "Untitled"
		}

		published, publishedAt := itemDate(it)

		items = append(items, domain.RawNewsItem{
			ID:          fmt.Sprintf("%s-%d-%d", src.Name, i, fetchedAt),
			Title:       title,
			Summary:     sanitize.Text(it.Description),
			URL:         link,
			SourceName:  src.Name,
			Image:       resolveImage(it, src.BaseURL),
			PublishedAt: publishedAt,
			Published:   published,
		})
	}

	return items
}

// itemLink prefers the link element, falling back to guid. CDATA wrappers
// survive some malformed feeds, so they are stripped here too.
func itemLink(it *gofeed.Item) string {
	link := stripCDATA(it.Link)
	if link == "" {
		link = stripCDATA(it.GUID)
	}
	return link
}

func stripCDATA(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<![CDATA[")
	s = strings.TrimSuffix(s, "]]>")
	return strings.TrimSpace(s)
}

// itemDate maps the feed publish date to a sort key and a display string.
// Unparseable dates become the zero time and an empty string, never an error.
func itemDate(it *gofeed.Item) (time.Time, string) {
	if it.PublishedParsed == nil {
		return time.Time{}, ""
	}
	t := *it.PublishedParsed
	return t, t.Format("02/01/2006")
}
