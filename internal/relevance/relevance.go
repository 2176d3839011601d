// Package relevance classifies raw feed items as in-scope or not. The
// upstream feeds mix Formula 1 coverage with other motorsport, so filtering
// happens on keywords plus a URL-path heuristic, with deny taking precedence.
package relevance

import (
	"strings"

	"github.com/velosh/paddockwire/internal/domain"
)

// IsRelevant reports whether the item covers Formula 1. Ambiguous items are
// excluded: default-deny.
func IsRelevant(item domain.RawNewsItem) bool {
	combined := strings.ToLower(item.Title) + " " + strings.ToLower(item.Summary)

	for _, kw := range denyKeywords {
		if strings.Contains(combined, kw) {
			return false
		}
	}

	for _, kw := range allowKeywords {
		if strings.Contains(combined, kw) {
			return true
		}
	}

	url := strings.ToLower(item.URL)
	for _, seg := range topicalPathSegments {
		if strings.Contains(url, seg) {
			return true
		}
	}

	return false
}
