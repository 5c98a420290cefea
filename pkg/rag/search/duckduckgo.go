package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const (
	DefaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"
	DefaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// DuckDuckGoSearcher scrapes the keyless DuckDuckGo HTML endpoint.
type DuckDuckGoSearcher struct {
	endpoint  string
	userAgent string
	client    *http.Client
}

func NewDuckDuckGoSearcher(endpoint, userAgent string) *DuckDuckGoSearcher {
	if endpoint == "" {
		endpoint = DefaultDuckDuckGoURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &DuckDuckGoSearcher{
		endpoint:  endpoint,
		userAgent: userAgent,
		client:    &http.Client{},
	}
}

func (s *DuckDuckGoSearcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	searchURL := s.endpoint + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	return parseResultLinks(string(body), limit)
}

// parseResultLinks collects result__a hrefs in document order, unwrapping
// DuckDuckGo redirect links and skipping duplicates.
func parseResultLinks(htmlContent string, limit int) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var urls []string
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if limit > 0 && len(urls) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" && strings.Contains(attrValue(n, "class"), "result__a") {
			if u := unwrapRedirect(attrValue(n, "href")); u != "" && !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return urls, nil
}

func unwrapRedirect(href string) string {
	if !strings.Contains(href, "duckduckgo.com/l/") {
		return href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("uddg")
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
