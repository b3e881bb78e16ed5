package cache

import (
	"context"
	"encoding/json"

	"github.com/dshills/chunkprompt/internal/providers"
)

// BuildCacheKey hashes everything that determines a completion.
func BuildCacheKey(provider string, req providers.CompletionRequest) string {
	material, _ := json.Marshal(struct {
		Provider string                      `json:"provider"`
		Request  providers.CompletionRequest `json:"request"`
	}{provider, req})
	return HashKey(string(material))
}

// Completer serves completions from the cache and stores fresh ones.
type Completer struct {
	next  providers.Completer
	cache *Cache
}

// Wrap decorates next with c. A nil or disabled cache returns next unchanged.
func Wrap(next providers.Completer, c *Cache) providers.Completer {
	if c == nil || !c.Enabled() {
		return next
	}
	return &Completer{next: next, cache: c}
}

// Name reports the wrapped provider's name.
func (w *Completer) Name() string { return w.next.Name() }

// Complete returns a cached completion when one exists. Errors from the
// wrapped provider pass through untouched so their classification survives.
func (w *Completer) Complete(ctx context.Context, req providers.CompletionRequest) (providers.CompletionResponse, error) {
	key := BuildCacheKey(w.next.Name(), req)
	if entry, ok := w.cache.Get(key); ok {
		return providers.CompletionResponse{Content: entry.Content, TokensUsed: entry.TokensUsed}, nil
	}

	resp, err := w.next.Complete(ctx, req)
	if err != nil {
		return resp, err
	}
	_ = w.cache.Put(key, resp.Content, resp.TokensUsed)
	return resp, nil
}
