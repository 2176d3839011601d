// Package aggregator runs the news pipeline: fetch every source in parallel,
// filter for relevance, cluster near-duplicates, synthesize merged items and
// sort by recency.
package aggregator

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/velosh/paddockwire/internal/cluster"
	"github.com/velosh/paddockwire/internal/domain"
	"github.com/velosh/paddockwire/internal/relevance"
)

// Fetcher retrieves one source's items. Implementations must degrade to an
// empty slice on failure rather than returning an error.
type Fetcher interface {
	Fetch(ctx context.Context, src domain.Source) []domain.RawNewsItem
}

type Aggregator struct {
	fetcher Fetcher
	sources []domain.Source
}

func New(sources []domain.Source, fetcher Fetcher) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		sources: sources,
	}
}

// Run executes the pipeline. Per-source failures contribute zero items and
// never fail the run; all sources failing yields an empty, non-nil result.
// The only error Run returns is ctx expiry, so callers can map it to a
// timeout response.
func (a *Aggregator) Run(ctx context.Context) ([]domain.NewsItem, error) {
	results := make([][]domain.RawNewsItem, len(a.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range a.sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = a.fetcher.Fetch(gctx, src)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []domain.RawNewsItem
	for _, r := range results {
		all = append(all, r...)
	}

	relevant := make([]domain.RawNewsItem, 0, len(all))
	for _, it := range all {
		if relevance.IsRelevant(it) {
			relevant = append(relevant, it)
		}
	}
	slog.Info("news pipeline fetched", "raw", len(all), "relevant", len(relevant))

	if len(relevant) == 0 {
		// "No news right now" is a valid outcome, not an error.
		return []domain.NewsItem{}, nil
	}

	groups := cluster.Group(relevant)
	items := cluster.Synthesize(groups)
	sortByRecency(items)

	return items, nil
}

// sortByRecency orders newest first. Items without a parseable publish date
// carry the zero time and sink to the end.
func sortByRecency(items []domain.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})
}
