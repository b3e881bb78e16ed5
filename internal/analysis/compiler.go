package analysis

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/chunkprompt/internal/logging"
	"github.com/dshills/chunkprompt/internal/providers"
)

// Compiler merges per-chunk analyses into the final report body.
type Compiler struct {
	client providers.Completer
	model  string

	log    *zap.Logger
	prompt *zap.Logger
	result *zap.Logger
}

// NewCompiler returns a Compiler.
func NewCompiler(client providers.Completer, model string, logger *zap.Logger) *Compiler {
	logger = orNop(logger)
	return &Compiler{
		client: client,
		model:  model,
		log:    logger,
		prompt: logging.For(logger, logging.CategoryPrompt),
		result: logging.For(logger, logging.CategoryResult),
	}
}

// Compile issues a single request. On failure it returns
// CompilationFallback and false.
func (c *Compiler) Compile(ctx context.Context, partials []PartialResult, instruction string) (string, bool) {
	req := compileParams.request(c.model, compileSystemPrompt, BuildCompileMessage(instruction, partials))
	c.prompt.Debug("compilation request",
		zap.Int("chunks", len(partials)),
		zap.String("prompt", req.Messages[1].Content),
	)

	resp, err := c.client.Complete(ctx, req)
	if err != nil {
		c.log.Error("compiling final report", zap.Error(err))
		return CompilationFallback, false
	}

	body := strings.TrimSpace(resp.Content)
	c.result.Debug("final report", zap.Int("tokens", resp.TokensUsed), zap.String("report", body))
	return body, true
}
