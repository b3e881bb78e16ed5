package cache

import (
	"context"
	"net/http"
	"testing"

	"github.com/dshills/chunkprompt/internal/providers"
)

type countingCompleter struct {
	calls int
	err   error
}

func (c *countingCompleter) Name() string { return "counting" }

func (c *countingCompleter) Complete(_ context.Context, req providers.CompletionRequest) (providers.CompletionResponse, error) {
	c.calls++
	if c.err != nil {
		return providers.CompletionResponse{}, c.err
	}
	return providers.CompletionResponse{Content: "answer to " + req.Messages[0].Content, TokensUsed: 7}, nil
}

func request(content string) providers.CompletionRequest {
	return providers.CompletionRequest{
		Model:       "gpt-4",
		Messages:    []providers.Message{{Role: providers.RoleUser, Content: content}},
		Temperature: 0.5,
		MaxTokens:   1500,
		N:           1,
	}
}

func TestBuildCacheKey(t *testing.T) {
	base := request("hello")
	k1 := BuildCacheKey("openai", base)
	if k1 != BuildCacheKey("openai", request("hello")) {
		t.Error("Same inputs should produce same cache key")
	}
	if k1 == BuildCacheKey("anthropic", base) {
		t.Error("Different provider should produce different cache key")
	}
	if k1 == BuildCacheKey("openai", request("bye")) {
		t.Error("Different messages should produce different cache key")
	}
	hot := base
	hot.Temperature = 0.9
	if k1 == BuildCacheKey("openai", hot) {
		t.Error("Different temperature should produce different cache key")
	}
}

func TestWrap_ServesRepeatsFromCache(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatal(err)
	}
	next := &countingCompleter{}
	wrapped := Wrap(next, c)

	for i := 0; i < 3; i++ {
		resp, err := wrapped.Complete(context.Background(), request("hello"))
		if err != nil {
			t.Fatalf("Complete error: %v", err)
		}
		if resp.Content != "answer to hello" || resp.TokensUsed != 7 {
			t.Errorf("resp = %+v", resp)
		}
	}
	if next.calls != 1 {
		t.Errorf("provider calls = %d, want 1", next.calls)
	}
	if wrapped.Name() != "counting" {
		t.Errorf("Name = %q", wrapped.Name())
	}
}

func TestWrap_ErrorsAreNotCached(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatal(err)
	}
	next := &countingCompleter{err: providers.StatusError(http.StatusTooManyRequests, "")}
	wrapped := Wrap(next, c)

	for i := 0; i < 2; i++ {
		_, err := wrapped.Complete(context.Background(), request("hello"))
		if !providers.IsRateLimit(err) {
			t.Fatalf("expected rate limit error to pass through, got %v", err)
		}
	}
	if next.calls != 2 {
		t.Errorf("provider calls = %d, want 2", next.calls)
	}
}

func TestWrap_DisabledReturnsNext(t *testing.T) {
	c, err := New(false, t.TempDir(), 3600)
	if err != nil {
		t.Fatal(err)
	}
	next := &countingCompleter{}
	if Wrap(next, c) != providers.Completer(next) {
		t.Error("disabled cache should not wrap")
	}
	if Wrap(next, nil) != providers.Completer(next) {
		t.Error("nil cache should not wrap")
	}
}
