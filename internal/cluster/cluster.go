// Package cluster groups raw feed items that report the same story and
// merges each group into a single client-facing news item.
package cluster

import (
	"github.com/velosh/paddockwire/internal/domain"
	"github.com/velosh/paddockwire/internal/similarity"
)

// Threshold is the minimum similarity against a cluster's seed for a
// candidate to join that cluster.
const Threshold = 0.3

// Group assigns items to clusters in a single pass over the input order.
// Each unassigned item seeds a new cluster and all later unassigned items are
// compared against that seed only, never against other members. A cluster can
// therefore contain items mutually below threshold with each other; this
// non-transitive behavior is a deliberate simplification, kept as-is because
// changing it would change output composition.
func Group(items []domain.RawNewsItem) [][]domain.RawNewsItem {
	var groups [][]domain.RawNewsItem
	assigned := make([]bool, len(items))

	for i := range items {
		if assigned[i] {
			continue
		}
		group := []domain.RawNewsItem{items[i]}
		assigned[i] = true
		seed := items[i].Title + " " + items[i].Summary

		for j := i + 1; j < len(items); j++ {
			if assigned[j] {
				continue
			}
			candidate := items[j].Title + " " + items[j].Summary
			if similarity.Score(seed, candidate) > Threshold {
				group = append(group, items[j])
				assigned[j] = true
			}
		}

		groups = append(groups, group)
	}

	return groups
}
