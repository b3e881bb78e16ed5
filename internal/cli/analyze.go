package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/chunkprompt/internal/analysis"
	"github.com/dshills/chunkprompt/internal/cache"
	"github.com/dshills/chunkprompt/internal/config"
	"github.com/dshills/chunkprompt/internal/logging"
	"github.com/dshills/chunkprompt/internal/output"
	"github.com/dshills/chunkprompt/internal/providers"
)

// Analyze flags
var (
	flagFile      string
	flagPrompt    string
	flagChunkSize int
	flagOutput    string
	flagFormat    string
	flagProvider  string
	flagModel     string
	flagPromptLog string
	flagResultLog string
	flagVerbose   bool
	flagCache     bool
	flagRedact    bool
)

// newCompleter builds the model client; tests replace it with a stub.
var newCompleter = providers.New

// sleeper is the backoff sleeper handed to the pipeline; nil sleeps for real.
var sleeper analysis.Sleeper

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a file chunk by chunk and write a compiled report",
	Long: "Refine the prompt, analyze every chunk of the file in order, and compile the\n" +
		"chunk analyses into a final report written to --output.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides(cmd))
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		exitCode = runAnalyze(cmd, cfg)
		return nil
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&flagFile, "file", "", "Path to the text file to analyze (required)")
	f.StringVar(&flagPrompt, "prompt", "", "What to analyze the file for (required)")
	f.IntVar(&flagChunkSize, "chunk-size", 1000, "Number of lines per chunk")
	f.StringVar(&flagOutput, "output", "analysis_report.txt", "Report output path")
	f.StringVar(&flagFormat, "format", "text", "Report format (text, markdown, json, html)")
	f.StringVar(&flagProvider, "provider", "", "LLM provider (openai, anthropic, gemini, ollama)")
	f.StringVar(&flagModel, "model", "", "Model name")
	f.StringVar(&flagPromptLog, "prompt-log", "prompts.log", "Prompt log file (empty disables)")
	f.StringVar(&flagResultLog, "result-log", "results.log", "Result log file (empty disables)")
	f.BoolVar(&flagVerbose, "verbose", false, "Show debug output on the console")
	f.BoolVar(&flagCache, "cache", false, "Reuse cached completions for identical requests")
	f.BoolVar(&flagRedact, "redact", false, "Mask likely secrets in chunk text before sending it")
	_ = analyzeCmd.MarkFlagRequired("file")
	_ = analyzeCmd.MarkFlagRequired("prompt")
}

// buildOverrides maps the flags the user actually set to config keys, so
// defaults from the config file and environment are not clobbered.
func buildOverrides(cmd *cobra.Command) map[string]string {
	m := make(map[string]string)
	changed := cmd.Flags().Changed
	if changed("provider") {
		m["provider"] = flagProvider
	}
	if changed("model") {
		m["model"] = flagModel
	}
	if changed("chunk-size") {
		m["chunkSize"] = strconv.Itoa(flagChunkSize)
	}
	if changed("output") {
		m["output"] = flagOutput
	}
	if changed("format") {
		m["format"] = flagFormat
	}
	if changed("prompt-log") {
		m["logs.promptFile"] = flagPromptLog
	}
	if changed("result-log") {
		m["logs.resultFile"] = flagResultLog
	}
	if changed("cache") {
		m["cache.enabled"] = strconv.FormatBool(flagCache)
	}
	if changed("redact") {
		m["privacy.redactSecrets"] = strconv.FormatBool(flagRedact)
	}
	return m
}

func runAnalyze(cmd *cobra.Command, cfg config.Config) int {
	stderr := cmd.ErrOrStderr()

	client, err := newCompleter(cfg.Provider, cfg.Model)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitFailure
	}

	logger, closeLogs, err := logging.New(logging.Options{
		Verbose:   flagVerbose,
		PromptLog: cfg.Logs.PromptFile,
		ResultLog: cfg.Logs.ResultFile,
		Console:   stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitFailure
	}
	defer closeLogs()

	if cfg.Cache.Enabled {
		c, err := cache.New(true, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
		if err != nil {
			logger.Error("opening cache", zap.Error(err))
			return ExitFailure
		}
		client = cache.Wrap(client, c)
		logger.Debug("completion cache enabled", zap.String("dir", c.Dir()))
	}

	sink, err := output.NewFileSink(cfg.Output, cfg.Format)
	if err != nil {
		logger.Error("configuring output", zap.Error(err))
		return ExitFailure
	}

	driver, err := analysis.New(analysis.Options{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		ChunkSize: cfg.ChunkSize,
		Retry: analysis.RetryPolicy{
			MaxAttempts:   cfg.Retry.MaxAttempts,
			BackoffFactor: cfg.Retry.BackoffFactor,
		},
		Redact:  cfg.Privacy.RedactSecrets,
		Version: version,
		Sleep:   sleeper,
	}, client, sink, logger)
	if err != nil {
		logger.Error("configuring pipeline", zap.Error(err))
		return ExitFailure
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := driver.Run(ctx, flagFile, flagPrompt)
	if err != nil {
		logger.Error("analysis failed", zap.Error(err))
		return ExitFailure
	}

	logger.Info("report written",
		zap.String("output", cfg.Output),
		zap.String("format", cfg.Format),
		zap.Int("chunks", len(report.Partials)),
		zap.Int("degraded", report.DegradedChunks),
	)
	return ExitSuccess
}
