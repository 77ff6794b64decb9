package dictionary

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Fetcher is anything that can resolve a word into entries.
type Fetcher interface {
	Fetch(ctx context.Context, word string) ([]Entry, error)
}

// Cached memoises successful fetches in a fixed-size LRU. Failures are not
// cached so a transient error can be retried by searching again.
type Cached struct {
	next  Fetcher
	cache *lru.Cache[string, []Entry]
}

// NewCached wraps next with an LRU holding up to size words.
func NewCached(next Fetcher, size int) (*Cached, error) {
	if next == nil {
		return nil, fmt.Errorf("dictionary: cached fetcher requires a source")
	}
	cache, err := lru.New[string, []Entry](size)
	if err != nil {
		return nil, fmt.Errorf("dictionary: create cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Fetch returns cached entries for word or delegates to the wrapped fetcher.
func (c *Cached) Fetch(ctx context.Context, word string) ([]Entry, error) {
	key := cacheKey(word)
	if entries, ok := c.cache.Get(key); ok {
		return entries, nil
	}
	entries, err := c.next.Fetch(ctx, word)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, entries)
	return entries, nil
}

// Len reports how many words are cached.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func cacheKey(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
