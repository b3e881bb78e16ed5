package analysis

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/chunkprompt/internal/chunk"
	"github.com/dshills/chunkprompt/internal/logging"
	"github.com/dshills/chunkprompt/internal/providers"
	"github.com/dshills/chunkprompt/internal/redact"
)

// Analyzer applies the chunk instruction to one chunk at a time.
type Analyzer struct {
	client providers.Completer
	model  string
	policy RetryPolicy
	sleep  Sleeper
	redact bool

	log    *zap.Logger
	prompt *zap.Logger
	result *zap.Logger
}

// NewAnalyzer returns an Analyzer. A nil sleep uses SleepContext.
func NewAnalyzer(client providers.Completer, model string, policy RetryPolicy, sleep Sleeper, redactSecrets bool, logger *zap.Logger) *Analyzer {
	if sleep == nil {
		sleep = SleepContext
	}
	logger = orNop(logger)
	return &Analyzer{
		client: client,
		model:  model,
		policy: policy,
		sleep:  sleep,
		redact: redactSecrets,
		log:    logger,
		prompt: logging.For(logger, logging.CategoryPrompt),
		result: logging.For(logger, logging.CategoryResult),
	}
}

// Analyze returns the chunk's analysis. Rate-limited attempts are retried
// with exponential backoff; any other failure, or running out of attempts,
// yields ChunkFallback with Degraded set. It never returns an error.
func (a *Analyzer) Analyze(ctx context.Context, c chunk.Chunk, instruction string) PartialResult {
	text := c.Text
	if a.redact {
		var hits map[string]int
		text, hits = redact.Scan(text)
		if len(hits) > 0 {
			a.log.Debug("redacted secrets", zap.Int("chunk", c.Index), zap.Any("rules", hits))
		}
	}
	req := analyzeParams.request(a.model, chunkSystemPrompt, BuildChunkMessage(instruction, text))

	res := PartialResult{
		ChunkIndex: c.Index,
		StartLine:  c.StartLine,
		Lines:      c.Lines,
	}

	for attempt := 1; attempt <= a.policy.MaxAttempts; attempt++ {
		res.Attempts = attempt
		a.prompt.Debug("chunk request",
			zap.Int("chunk", c.Index),
			zap.Int("attempt", attempt),
			zap.String("prompt", req.Messages[1].Content),
		)

		resp, err := a.client.Complete(ctx, req)
		if err == nil {
			res.Analysis = strings.TrimSpace(resp.Content)
			a.result.Debug("chunk analysis",
				zap.Int("chunk", c.Index),
				zap.Int("tokens", resp.TokensUsed),
				zap.String("analysis", res.Analysis),
			)
			return res
		}

		if !providers.IsRateLimit(err) {
			a.log.Error("model error while analyzing chunk", zap.Int("chunk", c.Index), zap.Error(err))
			return a.degrade(res)
		}

		wait := a.policy.Backoff(attempt)
		a.log.Warn("rate limit exceeded, retrying",
			zap.Int("chunk", c.Index),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
		)
		if err := a.sleep(ctx, wait); err != nil {
			a.log.Error("backoff interrupted", zap.Int("chunk", c.Index), zap.Error(err))
			return a.degrade(res)
		}
	}

	a.log.Error("failed to retrieve analysis after multiple attempts",
		zap.Int("chunk", c.Index),
		zap.Int("attempts", res.Attempts),
	)
	return a.degrade(res)
}

func (a *Analyzer) degrade(res PartialResult) PartialResult {
	res.Analysis = ChunkFallback
	res.Degraded = true
	a.result.Debug("chunk analysis", zap.Int("chunk", res.ChunkIndex), zap.String("analysis", res.Analysis))
	return res
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
