package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"aligntrack/internal/logging"
)

// Caching wraps a Client with an LRU of prompt -> completion. Artifact
// regeneration frequently replays identical prompts when the underlying
// snapshot has not changed; the cache spares those round trips.
type Caching struct {
	inner Client
	cache *lru.Cache[string, string]
}

// NewCaching wraps inner with an LRU holding up to size completions.
func NewCaching(inner Client, size int) (*Caching, error) {
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion cache: %w", err)
	}
	return &Caching{inner: inner, cache: cache}, nil
}

// Model returns the wrapped client's model identifier.
func (c *Caching) Model() string { return c.inner.Model() }

// Complete returns a cached completion when the exact prompt was answered
// before, otherwise delegates to the wrapped client. Failed completions are
// not cached.
func (c *Caching) Complete(ctx context.Context, prompt string) (string, error) {
	key := cacheKey(c.inner.Model(), prompt)
	if cached, ok := c.cache.Get(key); ok {
		logging.LLMDebug("[Cache] hit for prompt_len=%d", len(prompt))
		return cached, nil
	}
	resp, err := c.inner.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, resp)
	return resp, nil
}

func cacheKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}
