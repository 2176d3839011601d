package feed

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// resolveImage walks the image fallback chain, first match wins:
// enclosure url, then a media:content url, then the first <img> inside the
// description HTML. The result is always an absolute URL or empty.
func resolveImage(it *gofeed.Item, baseURL string) string {
	for _, enc := range it.Enclosures {
		if enc != nil && enc.URL != "" {
			return absolutize(enc.URL, baseURL)
		}
	}

	if media, ok := it.Extensions["media"]; ok {
		for _, ext := range media["content"] {
			if u := ext.Attrs["url"]; u != "" {
				return absolutize(u, baseURL)
			}
		}
	}

	return imageFromHTML(it.Description, baseURL)
}

// absolutize resolves feed-relative enclosure and media URLs by plain
// concatenation against the source base URL, the way the feeds themselves
// expect.
func absolutize(u, baseURL string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if strings.HasPrefix(u, "/") {
		return baseURL + u
	}
	return baseURL + "/" + u
}

// imageFromHTML parses an HTML fragment and returns the absolutized source of
// the first <img>, trying src, data-src and data-lazy-src in that order.
// Never fails: malformed HTML yields an empty string.
func imageFromHTML(fragment, baseURL string) string {
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	img := doc.Find("img").First()
	if img.Length() == 0 {
		return ""
	}

	src := firstAttr(img, "src", "data-src", "data-lazy-src")
	if src == "" {
		return ""
	}

	// Query strings on lazy-loader URLs routinely break hotlinking.
	src = strings.SplitN(src, "?", 2)[0]

	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return src
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/"):
		base, err := url.Parse(baseURL)
		if err != nil || base.Host == "" {
			return ""
		}
		return base.Scheme + "://" + base.Host + src
	default:
		base, err := url.Parse(baseURL)
		if err != nil || base.Host == "" {
			return ""
		}
		return base.Scheme + "://" + base.Host + "/" + src
	}
}

func firstAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := sel.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}
