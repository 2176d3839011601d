package relevance_test

import (
	"testing"

	"github.com/velosh/paddockwire/internal/domain"
	"github.com/velosh/paddockwire/internal/relevance"
)

func item(title, summary, url string) domain.RawNewsItem {
	return domain.RawNewsItem{Title: title, Summary: summary, URL: url}
}

func TestIsRelevant_AllowKeyword(t *testing.T) {
	if !relevance.IsRelevant(item("Verstappen wins Monaco Grand Prix", "", "https://example.com/story")) {
		t.Error("expected grand prix story to be relevant")
	}
}

func TestIsRelevant_DenyTakesPrecedence(t *testing.T) {
	// Both an allow keyword (grand prix) and a deny keyword (motogp).
	it := item("MotoGP rider tests Grand Prix circuit", "crossover event", "https://example.com/story")
	if relevance.IsRelevant(it) {
		t.Error("deny keyword must override allow keyword")
	}
}

func TestIsRelevant_DenyInSummary(t *testing.T) {
	it := item("Big weekend ahead", "full indycar schedule and entry list", "https://example.com/x")
	if relevance.IsRelevant(it) {
		t.Error("expected indycar summary to be rejected")
	}
}

func TestIsRelevant_URLPathHeuristic(t *testing.T) {
	it := item("Team announces new sponsor", "commercial partnership news", "https://example.com/f1/sponsor-news")
	if !relevance.IsRelevant(it) {
		t.Error("expected /f1/ URL to rescue ambiguous item")
	}

	it = item("Team announces new sponsor", "commercial partnership news", "https://example.com/formula-1/deal")
	if !relevance.IsRelevant(it) {
		t.Error("expected /formula-1/ URL to rescue ambiguous item")
	}
}

func TestIsRelevant_DefaultDeny(t *testing.T) {
	it := item("Company quarterly results", "earnings were strong", "https://example.com/business/results")
	if relevance.IsRelevant(it) {
		t.Error("ambiguous item must be excluded")
	}
}
