package scraper

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Link is a report title paired with the file it points to.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// IndexQuery describes where titles and file links live on an index page.
type IndexQuery struct {
	// Container is a CSS selector; only its first match is scanned.
	Container string
	// Title matches the text nodes naming each report.
	Title *regexp.Regexp
	// Href matches the href of each report file link.
	Href *regexp.Regexp
}

// FetchIndex downloads pageURL and extracts its report links.
func (s *Scraper) FetchIndex(ctx context.Context, pageURL string, q IndexQuery) ([]Link, error) {
	body, err := s.open(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing index URL: %w", err)
	}
	return ParseIndex(body, base, q)
}

// ParseIndex collects, in document order, the text nodes matching q.Title and
// the anchors whose href matches q.Href inside q.Container, then pairs the
// n-th title with the n-th link. Unpaired trailing entries are dropped.
// Relative hrefs are resolved against base.
func ParseIndex(r io.Reader, base *url.URL, q IndexQuery) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	container := doc.Find(q.Container).First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("index container %q not found", q.Container)
	}

	var titles, hrefs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if q.Title.MatchString(n.Data) {
				titles = append(titles, strings.TrimSpace(n.Data))
			}
		case html.ElementNode:
			for _, attr := range n.Attr {
				if attr.Key == "href" && q.Href.MatchString(attr.Val) {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(container.Get(0))

	n := len(titles)
	if len(hrefs) < n {
		n = len(hrefs)
	}
	links := make([]Link, 0, n)
	for i := 0; i < n; i++ {
		ref, err := url.Parse(strings.TrimSpace(hrefs[i]))
		if err != nil {
			return nil, fmt.Errorf("parsing link %q: %w", hrefs[i], err)
		}
		if base != nil {
			ref = base.ResolveReference(ref)
		}
		links = append(links, Link{Title: titles[i], URL: ref.String()})
	}
	return links, nil
}

// FileName returns the last path segment of a URL.
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	name := u.Path
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "", fmt.Errorf("URL %q has no file name", rawURL)
	}
	return name, nil
}
