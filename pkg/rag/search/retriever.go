package search

import (
	"context"
	"strings"
	"time"

	"os-help-bot/internal/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// SnippetLength caps each page summary, counted in runes.
const SnippetLength = 300

// Searcher returns result URLs in provider rank order.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// PageFetcher returns the readable paragraph text of a page.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// PageSummary is the snippet taken from one fetched result.
type PageSummary struct {
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Result is the outcome of one retrieval. A zero Result means nothing was found.
type Result struct {
	Summary string        `json:"summary"`
	Links   string        `json:"links"`
	URLs    []string      `json:"urls"`
	Pages   []PageSummary `json:"pages"`
}

func (r Result) Empty() bool {
	return len(r.URLs) == 0
}

// Config encapsulates retrieval parameters
type Config struct {
	TopK          int
	SearchTimeout time.Duration
	FetchTimeout  time.Duration
	CacheTTL      time.Duration
}

// DefaultConfig returns default retrieval configuration
func DefaultConfig() Config {
	return Config{
		TopK:          3,
		SearchTimeout: 10 * time.Second,
		FetchTimeout:  8 * time.Second,
		CacheTTL:      15 * time.Minute,
	}
}

// Retriever searches the web and summarizes the top pages.
type Retriever struct {
	searcher Searcher
	fetcher  PageFetcher
	cache    ResultCache
	config   Config
	logger   logger.ILogger
}

func NewRetriever(searcher Searcher, fetcher PageFetcher, config Config, logger logger.ILogger) *Retriever {
	return &Retriever{
		searcher: searcher,
		fetcher:  fetcher,
		config:   config,
		logger:   logger,
	}
}

// WithCache enables result caching. A nil cache disables it.
func (r *Retriever) WithCache(cache ResultCache) *Retriever {
	r.cache = cache
	return r
}

// Retrieve never fails: search errors yield an empty Result and page errors
// drop only that page's snippet. Links always cover every result URL.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) Result {
	if topK <= 0 {
		topK = r.config.TopK
	}

	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx, query, topK); ok {
			r.logger.Debug("SEARCH", "Cache hit", map[string]interface{}{"query": query})
			return cached
		}
	}

	urls, err := r.search(ctx, query, topK)
	if err != nil {
		r.logger.Error("SEARCH", "Web search failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return Result{}
	}
	if len(urls) == 0 {
		r.logger.Info("SEARCH", "No search results", map[string]interface{}{"query": query})
		return Result{}
	}

	snippets := r.fetchAll(ctx, urls, topK)

	result := Result{URLs: urls}
	var summaries, links []string
	for i, u := range urls {
		links = append(links, "- "+u)
		if snippets[i] == nil {
			continue
		}
		result.Pages = append(result.Pages, PageSummary{URL: u, Snippet: *snippets[i]})
		if *snippets[i] != "" {
			summaries = append(summaries, *snippets[i])
		}
	}
	result.Summary = strings.Join(summaries, "\n")
	result.Links = strings.Join(links, "\n")

	r.logger.Info("SEARCH", "Retrieval completed", map[string]interface{}{
		"query":   query,
		"results": len(urls),
		"fetched": len(result.Pages),
	})

	// A page that failed to fetch may succeed next time.
	if r.cache != nil && len(result.Pages) == len(result.URLs) {
		r.cache.Set(ctx, query, topK, result, r.config.CacheTTL)
	}
	return result
}

func (r *Retriever) search(ctx context.Context, query string, topK int) ([]string, error) {
	if r.config.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.SearchTimeout)
		defer cancel()
	}

	urls, err := r.searcher.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	if len(urls) > topK {
		urls = urls[:topK]
	}
	return urls, nil
}

// fetchAll returns one slot per URL; nil marks a failed fetch.
func (r *Retriever) fetchAll(ctx context.Context, urls []string, limit int) []*string {
	snippets := make([]*string, len(urls))

	// Workers never return errors so one bad page can't cancel the others.
	var g errgroup.Group
	g.SetLimit(limit)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			fetchCtx := ctx
			if r.config.FetchTimeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(ctx, r.config.FetchTimeout)
				defer cancel()
			}

			text, err := r.fetcher.FetchText(fetchCtx, u)
			if err != nil {
				r.logger.Warn("SEARCH", "Page fetch failed", map[string]interface{}{
					"url":   u,
					"error": err.Error(),
				})
				return nil
			}
			snippet := truncateRunes(text, SnippetLength)
			snippets[i] = &snippet
			return nil
		})
	}
	_ = g.Wait()
	return snippets
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
