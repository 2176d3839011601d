package domain

import "time"

// PlaceholderImage is served when no cluster member carries a usable image.
const PlaceholderImage = "/favicon.svg"

// Source is one upstream RSS feed. BaseURL resolves relative links and images.
type Source struct {
	Name    string `yaml:"name" json:"name"`
	RSSURL  string `yaml:"rssUrl" json:"rssUrl"`
	BaseURL string `yaml:"baseUrl" json:"baseUrl"`
}

// RawNewsItem is one article as extracted from a single source feed.
// Instances are created per fetch and immutable afterwards; the ID is unique
// within a fetch but not stable across fetches.
type RawNewsItem struct {
	ID          string
	Title       string
	Summary     string
	URL         string
	SourceName  string
	Image       string // absolute URL or empty, never relative
	PublishedAt string // dd/mm/yyyy, empty when the feed date was unparseable

	// Published is the parsed publish time used for recency sorting.
	// Zero when PublishedAt is empty.
	Published time.Time
}

// NewsItem is one merged story returned to clients. SourceName lists every
// contributing source, with the source that supplied the image first.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	SourceName  string    `json:"sourceName"`
	Image       string    `json:"image"`
	PublishedAt string    `json:"publishedAt"`
	SourceURL   string    `json:"sourceUrl"`
	Published   time.Time `json:"-"`
}
