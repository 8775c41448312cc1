package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/vkrlab/vkrscan/pkg/config"
	"github.com/vkrlab/vkrscan/pkg/httpx"
)

// Crawler drives the same-host breadth-first traversal. Fetches are
// strictly sequential, so visitation order depends only on
// link-discovery order and traversal is deterministic.
type Crawler struct {
	client        *httpx.Client
	maxPages      int
	includeSubmit bool

	seedHost string
	visited  mapset.Set[string]

	// Deduplicated target accumulator, first-seen order
	seenKeys mapset.Set[TargetKey]
	targets  []*Target
}

// CrawlResult represents the outcome of one traversal
type CrawlResult struct {
	StartURL     string        `json:"start_url"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	Duration     time.Duration `json:"duration"`
	PagesVisited int           `json:"pages_visited"`
	Targets      []*Target     `json:"targets"`

	// Visited URLs, membership only; callers must not rely on order
	Visited []string `json:"visited"`
}

// New creates a crawler bound to an HTTP client and crawl policy. The
// client is shared with the detector for connection and cookie reuse.
func New(client *httpx.Client, crawlerConfig *config.CrawlerConfig) (*Crawler, error) {
	if client == nil {
		return nil, fmt.Errorf("crawler: HTTP client is required")
	}
	if crawlerConfig == nil || crawlerConfig.MaxPages <= 0 {
		return nil, fmt.Errorf("crawler: max pages must be positive")
	}

	return &Crawler{
		client:        client,
		maxPages:      crawlerConfig.MaxPages,
		includeSubmit: crawlerConfig.IncludeSubmit,
		visited:       mapset.NewThreadUnsafeSet[string](),
		seenKeys:      mapset.NewThreadUnsafeSet[TargetKey](),
	}, nil
}

// Crawl walks the site breadth-first from startURL, visiting at most
// maxPages same-host pages and accumulating deduplicated targets.
// Per-page failures are skipped; only an invalid start URL is an error.
func (c *Crawler) Crawl(ctx context.Context, startURL string) (*CrawlResult, error) {
	startTime := time.Now()

	seed, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("crawler: invalid start URL: %w", err)
	}
	if seed.Host == "" {
		return nil, fmt.Errorf("crawler: start URL has no host: %s", startURL)
	}
	c.seedHost = seed.Host

	queue := []string{startURL}

	for len(queue) > 0 && c.visited.Cardinality() < c.maxPages {
		if ctx.Err() != nil {
			break
		}

		pageURL := queue[0]
		queue = queue[1:]

		if c.visited.Contains(pageURL) {
			continue
		}
		c.visited.Add(pageURL)

		resp, err := c.client.Get(ctx, pageURL)
		if err != nil {
			// transport failure: abandon this URL, keep crawling
			continue
		}

		contentType := strings.ToLower(resp.Header.Get("Content-Type"))
		if !strings.Contains(contentType, "text/html") {
			continue
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.BodyText))
		if err != nil {
			continue
		}

		for _, target := range extractDocTargets(pageURL, doc, c.includeSubmit) {
			c.accumulate(target)
		}

		for _, link := range c.pageLinks(pageURL, doc) {
			if !c.visited.Contains(link) {
				queue = append(queue, link)
			}
		}
	}

	result := &CrawlResult{
		StartURL:     startURL,
		StartTime:    startTime,
		EndTime:      time.Now(),
		PagesVisited: c.visited.Cardinality(),
		Targets:      c.targets,
		Visited:      c.visited.ToSlice(),
	}
	result.Duration = result.EndTime.Sub(result.StartTime)

	return result, nil
}

// accumulate merges one extracted target into the dedup store;
// first-seen wins
func (c *Crawler) accumulate(target *Target) {
	key := target.Key()
	if c.seenKeys.Contains(key) {
		return
	}
	c.seenKeys.Add(key)
	c.targets = append(c.targets, target)
}

// isNavigableLink discards hrefs that can never lead to an in-scope
// page: empty, fragment-only, or non-navigable schemes
func isNavigableLink(href string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(href))
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "#") {
		return false
	}
	for _, scheme := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(trimmed, scheme) {
			return false
		}
	}
	return true
}

// pageLinks extracts anchor links from a page, resolves them against
// the page URL, strips fragments and keeps only links whose host
// exactly matches the seed host
func (c *Crawler) pageLinks(pageURL string, doc *goquery.Document) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a").Each(func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok || !isNavigableLink(href) {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		resolved.Fragment = ""
		resolved.RawFragment = ""

		if resolved.Host != c.seedHost {
			return
		}

		links = append(links, resolved.String())
	})

	return links
}
