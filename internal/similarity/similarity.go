// Package similarity scores how likely two text snippets describe the same
// story. The score drives both clustering and sentence deduplication.
package similarity

import (
	"math"
	"strings"
)

// domainKeywords are high-signal terms. Sharing one of these is worth more
// than ordinary token overlap, so each shared keyword adds a 0.1 bonus on top
// of the Jaccard index before clamping.
var domainKeywords = []string{
	"f1", "formula", "grand", "prix",
	"verstappen", "hamilton",
	"ferrari", "mercedes", "red bull", "mclaren",
}

// Score returns a similarity in [0,1] between a and b: the Jaccard index over
// lower-cased tokens longer than two characters, plus the keyword bonus,
// clamped to 1. Deterministic; symmetric up to the keyword substring checks
// running against the raw strings.
func Score(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	setA := toSet(tokensA)
	setB := toSet(tokensB)

	intersection := 0
	union := len(setB)
	for t := range setA {
		if setB[t] {
			intersection++
		} else {
			union++
		}
	}
	jaccard := float64(intersection) / float64(union)

	lowerA := strings.ToLower(a)
	lowerB := strings.ToLower(b)
	bonus := 0.0
	for _, kw := range domainKeywords {
		if strings.Contains(lowerA, kw) && strings.Contains(lowerB, kw) {
			bonus += 0.1
		}
	}

	return math.Min(1, jaccard+bonus)
}

func tokenize(s string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if len(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
