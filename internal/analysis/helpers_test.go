package analysis

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dshills/chunkprompt/internal/providers"
)

// stubClient answers requests through respond and records every call.
type stubClient struct {
	calls   []providers.CompletionRequest
	respond func(req providers.CompletionRequest, call int) (string, error)
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Complete(_ context.Context, req providers.CompletionRequest) (providers.CompletionResponse, error) {
	s.calls = append(s.calls, req)
	content, err := s.respond(req, len(s.calls))
	if err != nil {
		return providers.CompletionResponse{}, err
	}
	return providers.CompletionResponse{Content: content, TokensUsed: 10}, nil
}

func userMessage(req providers.CompletionRequest) string {
	return req.Messages[len(req.Messages)-1].Content
}

func kindOf(req providers.CompletionRequest) string {
	switch req.Messages[0].Content {
	case refineSystemPrompt:
		return "refine"
	case chunkSystemPrompt:
		return "analyze"
	case compileSystemPrompt:
		return "compile"
	}
	return "unknown"
}

func rateLimited() error { return providers.StatusError(http.StatusTooManyRequests, "slow down") }

// recordingSleeper captures requested waits without blocking.
type recordingSleeper struct {
	waits []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

// memorySink keeps the last written report.
type memorySink struct {
	report *Report
	writes int
	err    error
}

func (m *memorySink) Write(r *Report) error {
	m.writes++
	if m.err != nil {
		return m.err
	}
	m.report = r
	return nil
}

func writeLines(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		b.WriteString("line ")
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString("\n")
	}
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}
