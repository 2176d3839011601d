package cluster

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/velosh/paddockwire/internal/domain"
	"github.com/velosh/paddockwire/internal/similarity"
	"github.com/velosh/paddockwire/pkg/stringsutil"
)

const (
	// sentenceDedupeThreshold drops a sentence when it scores above this
	// against any sentence already kept.
	sentenceDedupeThreshold = 0.7

	minSentenceLen      = 20
	summarySentenceMin  = 30
	summarySentenceMax  = 200
	summarySentenceKeep = 3
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	imageExt      = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)
	imageHost     = regexp.MustCompile(`(?i)(cdn|img|image|photo|media|cloudinary|imgur)`)
)

// Synthesize merges each cluster into one NewsItem. The published date is
// taken from the first cluster member, whatever its order, matching the
// shipped behavior; it is not necessarily the most recent member.
func Synthesize(groups [][]domain.RawNewsItem) []domain.NewsItem {
	now := time.Now().UnixMilli()
	items := make([]domain.NewsItem, 0, len(groups))

	for idx, group := range groups {
		if len(group) == 0 {
			continue
		}

		image, sourceURL, imageSource := selectImage(group)

		names := make([]string, 0, len(group))
		for _, m := range group {
			names = append(names, m.SourceName)
		}
		sources := stringsutil.Dedupe(names)
		sources = stringsutil.MoveToFront(sources, imageSource)

		items = append(items, domain.NewsItem{
			ID:          fmt.Sprintf("synthesized-%d-%d", idx, now),
			Title:       synthesizeTitle(group),
			Summary:     synthesizeSummary(group),
			URL:         sourceURL,
			SourceName:  strings.Join(sources, ", "),
			Image:       image,
			PublishedAt: group[0].PublishedAt,
			SourceURL:   sourceURL,
			Published:   group[0].Published,
		})
	}

	return items
}

// synthesizeTitle builds a merged headline. With one member the title is used
// verbatim. With more, words appearing in at least two titles are "common";
// the shortest title is the base, filtered to words that are common or longer
// than four characters. Fewer than three surviving words falls back to the
// shortest original title.
func synthesizeTitle(group []domain.RawNewsItem) string {
	if len(group) == 1 {
		return group[0].Title
	}

	counts := map[string]int{}
	for _, m := range group {
		seen := map[string]bool{}
		for _, w := range strings.Fields(strings.ToLower(m.Title)) {
			if len(w) > 2 && !seen[w] {
				seen[w] = true
				counts[w]++
			}
		}
	}

	common := map[string]bool{}
	for w, c := range counts {
		if c >= 2 {
			common[w] = true
		}
	}

	base := group[0].Title
	for _, m := range group[1:] {
		if len(m.Title) < len(base) {
			base = m.Title
		}
	}

	if len(common) >= 3 {
		var kept []string
		for _, w := range strings.Fields(base) {
			if common[strings.ToLower(w)] || len(w) > 4 {
				kept = append(kept, w)
			}
		}
		if len(kept) >= 3 {
			return strings.Join(kept, " ")
		}
	}

	return base
}

// synthesizeSummary merges cluster summaries sentence-wise: sentences longer
// than 20 characters are deduplicated against each other with the similarity
// scorer, filtered to a readable length band, and the first three are joined.
// When nothing qualifies, the longest original summary is used verbatim.
func synthesizeSummary(group []domain.RawNewsItem) string {
	if len(group) == 1 {
		return group[0].Summary
	}

	var sentences []string
	for _, m := range group {
		for _, s := range sentenceSplit.Split(m.Summary, -1) {
			s = strings.TrimSpace(s)
			if len(s) > minSentenceLen {
				sentences = append(sentences, s)
			}
		}
	}

	var unique []string
	for _, s := range sentences {
		duplicate := false
		for _, kept := range unique {
			if similarity.Score(s, kept) > sentenceDedupeThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, s)
		}
	}

	var selected []string
	for _, s := range unique {
		if len(s) > summarySentenceMin && len(s) < summarySentenceMax {
			selected = append(selected, s)
			if len(selected) == summarySentenceKeep {
				break
			}
		}
	}

	if len(selected) == 0 {
		longest := group[0].Summary
		for _, m := range group[1:] {
			if len(m.Summary) > len(longest) {
				longest = m.Summary
			}
		}
		return longest
	}

	return strings.Join(selected, ". ") + "."
}

// selectImage picks the representative image and its owning member. Members
// with a real absolute-URL image are considered in cluster order; ones whose
// URL looks like an image file or CDN asset are preferred. First match wins
// on purpose: the order decides which source gets attribution, and replacing
// this with a scored best-pick would silently change that.
func selectImage(group []domain.RawNewsItem) (image, sourceURL, sourceName string) {
	var valid []domain.RawNewsItem
	for _, m := range group {
		img := strings.TrimSpace(m.Image)
		if img == "" || img == domain.PlaceholderImage {
			continue
		}
		if !strings.HasPrefix(img, "http") {
			continue
		}
		valid = append(valid, m)
	}

	if len(valid) == 0 {
		return domain.PlaceholderImage, group[0].URL, group[0].SourceName
	}

	for _, m := range valid {
		if imageExt.MatchString(m.Image) || imageHost.MatchString(m.Image) {
			return m.Image, m.URL, m.SourceName
		}
	}

	return valid[0].Image, valid[0].URL, valid[0].SourceName
}
