package tokenize

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cached memoizes the token lists of a wrapped tokenizer. Dictionary entities
// are tokenized once per sentence they are looked up in, so the same strings
// come back constantly.
type Cached struct {
	inner Tokenizer
	cache *gocache.Cache
}

// NewCached wraps inner with a cache whose entries expire after ttl.
func NewCached(inner Tokenizer, ttl, cleanupInterval time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Tokenize implements Tokenizer. The returned slice is owned by the caller.
func (c *Cached) Tokenize(text string) []string {
	if val, found := c.cache.Get(text); found {
		return cloneTokens(val.([]string))
	}
	tokens := c.inner.Tokenize(text)
	c.cache.SetDefault(text, cloneTokens(tokens))
	return tokens
}

// Len returns the number of cached entries.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}

func cloneTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}
