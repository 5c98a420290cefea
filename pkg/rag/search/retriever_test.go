package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"os-help-bot/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSearcher struct {
	urls  []string
	err   error
	calls int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	f.calls++
	return f.urls, f.err
}

type fakeFetcher struct {
	pages map[string]string
	fail  map[string]bool
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	if f.fail[url] {
		return "", errors.New("connection reset")
	}
	return f.pages[url], nil
}

type memoryCache struct {
	mu      sync.Mutex
	results map[string]Result
}

func (c *memoryCache) Get(ctx context.Context, query string, topK int) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[cacheKey(query, topK)]
	return r, ok
}

func (c *memoryCache) Set(ctx context.Context, query string, topK int, result Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[cacheKey(query, topK)] = result
}

func newTestRetriever(s Searcher, f PageFetcher) *Retriever {
	return NewRetriever(s, f, DefaultConfig(), logger.NewNopLogger())
}

func TestRetrieveSkipsFailedPages(t *testing.T) {
	searcher := &fakeSearcher{urls: []string{"https://a", "https://b", "https://c"}}
	fetcher := &fakeFetcher{
		pages: map[string]string{"https://a": "alpha text", "https://c": "gamma text"},
		fail:  map[string]bool{"https://b": true},
	}

	got := newTestRetriever(searcher, fetcher).Retrieve(context.Background(), "wifi drops", 3)

	assert.Equal(t, "alpha text\ngamma text", got.Summary)
	assert.Equal(t, "- https://a\n- https://b\n- https://c", got.Links)
	assert.Equal(t, []string{"https://a", "https://b", "https://c"}, got.URLs)
	require.Len(t, got.Pages, 2)
	assert.Equal(t, "https://a", got.Pages[0].URL)
	assert.Equal(t, "https://c", got.Pages[1].URL)
}

func TestRetrieveTruncatesSnippets(t *testing.T) {
	long := strings.Repeat("é", SnippetLength+50)
	searcher := &fakeSearcher{urls: []string{"https://a"}}
	fetcher := &fakeFetcher{pages: map[string]string{"https://a": long}}

	got := newTestRetriever(searcher, fetcher).Retrieve(context.Background(), "q", 3)

	assert.Equal(t, SnippetLength, len([]rune(got.Summary)))
}

func TestRetrieveKeepsTopK(t *testing.T) {
	searcher := &fakeSearcher{urls: []string{"https://a", "https://b", "https://c", "https://d"}}
	fetcher := &fakeFetcher{pages: map[string]string{}}

	got := newTestRetriever(searcher, fetcher).Retrieve(context.Background(), "q", 2)

	assert.Equal(t, []string{"https://a", "https://b"}, got.URLs)
	assert.Equal(t, "- https://a\n- https://b", got.Links)
	assert.Empty(t, got.Summary)
}

func TestRetrieveSearchFailure(t *testing.T) {
	tests := []struct {
		name     string
		searcher *fakeSearcher
	}{
		{name: "search error", searcher: &fakeSearcher{err: errors.New("rate limited")}},
		{name: "no results", searcher: &fakeSearcher{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestRetriever(tt.searcher, &fakeFetcher{}).Retrieve(context.Background(), "q", 3)
			assert.True(t, got.Empty())
			assert.Empty(t, got.Summary)
			assert.Empty(t, got.Links)
		})
	}
}

func TestRetrieveUsesCache(t *testing.T) {
	searcher := &fakeSearcher{urls: []string{"https://a"}}
	fetcher := &fakeFetcher{pages: map[string]string{"https://a": "alpha"}}
	cache := &memoryCache{results: map[string]Result{}}
	r := newTestRetriever(searcher, fetcher).WithCache(cache)

	first := r.Retrieve(context.Background(), "Wifi", 3)
	second := r.Retrieve(context.Background(), "wifi", 3)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, searcher.calls)
}

func TestRetrieveDoesNotCachePartialResults(t *testing.T) {
	searcher := &fakeSearcher{urls: []string{"https://a", "https://b"}}
	fetcher := &fakeFetcher{
		pages: map[string]string{"https://a": "alpha", "https://b": "beta"},
		fail:  map[string]bool{"https://b": true},
	}
	cache := &memoryCache{results: map[string]Result{}}
	r := newTestRetriever(searcher, fetcher).WithCache(cache)

	first := r.Retrieve(context.Background(), "wifi", 3)
	require.Len(t, first.Pages, 1)
	assert.Empty(t, cache.results)

	fetcher.fail = nil
	second := r.Retrieve(context.Background(), "wifi", 3)

	assert.Equal(t, 2, searcher.calls)
	assert.Len(t, second.Pages, 2)
	assert.Equal(t, "alpha\nbeta", second.Summary)
	assert.Len(t, cache.results, 1)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "日本", truncateRunes("日本語", 2))
}
