package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/chunkprompt/internal/providers"
)

func TestSplitRefinement(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    RefinedPrompt
	}{
		{
			name:    "canonical delimiter",
			content: "Summarize this chunk.\n\n---\n\nMerge the summaries.",
			want:    RefinedPrompt{ChunkInstruction: "Summarize this chunk.", CompilationInstruction: "Merge the summaries.", Split: true},
		},
		{
			name:    "bare delimiter line",
			content: "Summarize this chunk.\n---\nMerge the summaries.",
			want:    RefinedPrompt{ChunkInstruction: "Summarize this chunk.", CompilationInstruction: "Merge the summaries.", Split: true},
		},
		{
			name:    "splits at first delimiter only",
			content: "A\n\n---\n\nB\n\n---\n\nC",
			want:    RefinedPrompt{ChunkInstruction: "A", CompilationInstruction: "B\n\n---\n\nC", Split: true},
		},
		{
			name:    "no delimiter",
			content: "Summarize each chunk in two sentences.",
			want:    RefinedPrompt{ChunkInstruction: "Summarize each chunk in two sentences.", CompilationInstruction: DefaultCompilationInstruction},
		},
		{
			name:    "empty compilation side",
			content: "Summarize.\n\n---\n\n",
			want:    RefinedPrompt{ChunkInstruction: "Summarize.\n\n---", CompilationInstruction: DefaultCompilationInstruction},
		},
		{
			name:    "dashes inside a line are not a delimiter",
			content: "Use a --- b notation.",
			want:    RefinedPrompt{ChunkInstruction: "Use a --- b notation.", CompilationInstruction: DefaultCompilationInstruction},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitRefinement(tt.content))
		})
	}
}

func TestRefiner_Refine(t *testing.T) {
	client := &stubClient{respond: func(req providers.CompletionRequest, _ int) (string, error) {
		return "  Find bugs in this chunk.\n\n---\n\nList all bugs by severity.  \n", nil
	}}
	r := NewRefiner(client, "gpt-4", nil)

	got, err := r.Refine(context.Background(), "find bugs")
	require.NoError(t, err)
	assert.Equal(t, "Find bugs in this chunk.", got.ChunkInstruction)
	assert.Equal(t, "List all bugs by severity.", got.CompilationInstruction)

	require.Len(t, client.calls, 1)
	req := client.calls[0]
	assert.Equal(t, "gpt-4", req.Model)
	assert.Equal(t, 0.3, req.Temperature)
	assert.Equal(t, 1000, req.MaxTokens)
	assert.Equal(t, 1, req.N)
	assert.Empty(t, req.Stop)
	assert.Contains(t, userMessage(req), `"find bugs"`)
}

func TestRefiner_ErrorIsFatal(t *testing.T) {
	client := &stubClient{respond: func(providers.CompletionRequest, int) (string, error) {
		return "", rateLimited()
	}}
	r := NewRefiner(client, "gpt-4", nil)

	_, err := r.Refine(context.Background(), "find bugs")
	var refineErr *RefineError
	require.True(t, errors.As(err, &refineErr))
	assert.True(t, providers.IsRateLimit(err))
	assert.Len(t, client.calls, 1, "refinement is never retried")
}

func TestRefiner_EmptyResponse(t *testing.T) {
	client := &stubClient{respond: func(providers.CompletionRequest, int) (string, error) {
		return " \n ", nil
	}}
	_, err := NewRefiner(client, "gpt-4", nil).Refine(context.Background(), "x")
	var refineErr *RefineError
	assert.True(t, errors.As(err, &refineErr))
}

func TestBuildRefineMessage_EmbedsPromptVerbatim(t *testing.T) {
	prompt := "Find errors.\nQuote the \"message\" field."

	msg := BuildRefineMessage(prompt)

	assert.Contains(t, msg, "\""+prompt+"\"")
	assert.NotContains(t, msg, `\"`)
}
