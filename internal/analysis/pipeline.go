package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/chunkprompt/internal/chunk"
	"github.com/dshills/chunkprompt/internal/providers"
)

// Options configures a Driver.
type Options struct {
	Provider  string
	Model     string
	ChunkSize int
	Retry     RetryPolicy
	Redact    bool
	Version   string
	// Sleep overrides the backoff sleeper. Nil uses SleepContext.
	Sleep Sleeper
}

func (o Options) validate() error {
	if o.ChunkSize <= 0 {
		return chunk.ErrInvalidChunkSize
	}
	if o.Retry.MaxAttempts <= 0 {
		return errors.New("retry max attempts must be positive")
	}
	if o.Retry.BackoffFactor < 1 {
		return errors.New("retry backoff factor must be at least 1")
	}
	return nil
}

// Driver sequences refinement, per-chunk analysis, and compilation.
type Driver struct {
	opts   Options
	client providers.Completer
	sink   Sink
	log    *zap.Logger
}

// New returns a Driver. A nil logger discards log output.
func New(opts Options, client providers.Completer, sink Sink, logger *zap.Logger) (*Driver, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("model client is required")
	}
	if sink == nil {
		return nil, errors.New("output sink is required")
	}
	logger = orNop(logger)
	if opts.Provider == "" {
		opts.Provider = client.Name()
	}
	return &Driver{opts: opts, client: client, sink: sink, log: logger}, nil
}

// Run analyzes the file at path with userPrompt and writes the report to
// the sink. Degraded chunks and a failed compilation are reported in the
// returned Report, not as errors.
func (d *Driver) Run(ctx context.Context, path, userPrompt string) (*Report, error) {
	start := time.Now()

	reader, err := chunk.Open(path, d.opts.ChunkSize)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	report := &Report{
		Tool:      "chunkprompt",
		Version:   d.opts.Version,
		RunID:     uuid.NewString(),
		CreatedAt: start.UTC(),
		File:      path,
		Provider:  d.opts.Provider,
		Model:     d.opts.Model,
		ChunkSize: d.opts.ChunkSize,
		Prompt:    userPrompt,
	}
	log := d.log.With(zap.String("run", report.RunID))
	refiner := NewRefiner(d.client, d.opts.Model, log)
	analyzer := NewAnalyzer(d.client, d.opts.Model, d.opts.Retry, d.opts.Sleep, d.opts.Redact, log)
	compiler := NewCompiler(d.client, d.opts.Model, log)

	log.Info("refining prompt", zap.String("file", path))
	refineStart := time.Now()
	refined, err := refiner.Refine(ctx, userPrompt)
	if err != nil {
		return nil, err
	}
	report.Refined = refined
	report.Timing.RefineMs = time.Since(refineStart).Milliseconds()
	if !refined.Split {
		log.Warn("refinement had no delimiter, using default compilation instruction")
	}

	analyzeStart := time.Now()
	for reader.Next() {
		c := reader.Chunk()
		log.Info("processing chunk",
			zap.Int("chunk", c.Index),
			zap.Int("startLine", c.StartLine),
			zap.Int("lines", c.Lines),
		)
		res := analyzer.Analyze(ctx, c, refined.ChunkInstruction)
		if res.Degraded {
			report.DegradedChunks++
		}
		report.Partials = append(report.Partials, res)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", reader.Path(), err)
	}
	report.Timing.AnalyzeMs = time.Since(analyzeStart).Milliseconds()

	log.Info("compiling final report", zap.Int("chunks", len(report.Partials)))
	compileStart := time.Now()
	body, ok := compiler.Compile(ctx, report.Partials, refined.CompilationInstruction)
	report.Body = body
	report.CompilationFailed = !ok
	report.Timing.CompileMs = time.Since(compileStart).Milliseconds()
	report.Timing.TotalMs = time.Since(start).Milliseconds()

	if err := d.sink.Write(report); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	log.Info("analysis complete",
		zap.Int("chunks", len(report.Partials)),
		zap.Int("degraded", report.DegradedChunks),
		zap.Bool("compilationFailed", report.CompilationFailed),
	)
	return report, nil
}
