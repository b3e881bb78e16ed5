package analysis

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/chunkprompt/internal/logging"
	"github.com/dshills/chunkprompt/internal/providers"
)

const refinementDelimiter = "\n\n---\n\n"

var delimiterLine = regexp.MustCompile(`(?m)^[ \t]*---[ \t]*$`)

// RefineError reports a failed refinement request. It aborts the run.
type RefineError struct {
	Err error
}

func (e *RefineError) Error() string {
	return fmt.Sprintf("refining prompt: %v", e.Err)
}

func (e *RefineError) Unwrap() error { return e.Err }

// Refiner turns a user prompt into chunk and compilation instructions.
type Refiner struct {
	client providers.Completer
	model  string
	prompt *zap.Logger
}

// NewRefiner returns a Refiner that logs prompt traffic through logger.
func NewRefiner(client providers.Completer, model string, logger *zap.Logger) *Refiner {
	logger = orNop(logger)
	return &Refiner{
		client: client,
		model:  model,
		prompt: logging.For(logger, logging.CategoryPrompt),
	}
}

// Refine issues one completion request and splits the response.
func (r *Refiner) Refine(ctx context.Context, userPrompt string) (RefinedPrompt, error) {
	req := refineParams.request(r.model, refineSystemPrompt, BuildRefineMessage(userPrompt))
	r.prompt.Debug("refinement request", zap.String("prompt", userPrompt))

	resp, err := r.client.Complete(ctx, req)
	if err != nil {
		return RefinedPrompt{}, &RefineError{Err: err}
	}
	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return RefinedPrompt{}, &RefineError{Err: errors.New("model returned an empty refinement")}
	}

	refined := SplitRefinement(content)
	r.prompt.Debug("refined content",
		zap.String("chunkInstruction", refined.ChunkInstruction),
		zap.String("compilationInstruction", refined.CompilationInstruction),
		zap.Bool("split", refined.Split),
	)
	return refined, nil
}

// SplitRefinement separates a refinement response at its first delimiter.
// Without a usable delimiter the whole response becomes the chunk
// instruction and the default compilation instruction is used.
func SplitRefinement(content string) RefinedPrompt {
	content = strings.TrimSpace(content)

	if i := strings.Index(content, refinementDelimiter); i >= 0 {
		if p, ok := splitAt(content, i, i+len(refinementDelimiter)); ok {
			return p
		}
	}
	if loc := delimiterLine.FindStringIndex(content); loc != nil {
		if p, ok := splitAt(content, loc[0], loc[1]); ok {
			return p
		}
	}
	return RefinedPrompt{
		ChunkInstruction:       content,
		CompilationInstruction: DefaultCompilationInstruction,
	}
}

func splitAt(content string, start, end int) (RefinedPrompt, bool) {
	chunkPart := strings.TrimSpace(content[:start])
	compilePart := strings.TrimSpace(content[end:])
	if chunkPart == "" || compilePart == "" {
		return RefinedPrompt{}, false
	}
	return RefinedPrompt{
		ChunkInstruction:       chunkPart,
		CompilationInstruction: compilePart,
		Split:                  true,
	}, true
}
