package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category tags a log event for routing to a dedicated sink.
type Category string

const (
	// CategoryPrompt marks text sent to the model.
	CategoryPrompt Category = "prompt"
	// CategoryResult marks text received from the model.
	CategoryResult Category = "result"
)

// FieldKey is the structured field that carries an event's category.
const FieldKey = "category"

// Options configures New.
type Options struct {
	// Verbose lowers the console level from INFO to DEBUG.
	Verbose bool
	// PromptLog and ResultLog are file paths for the category sinks. An empty
	// path disables that sink.
	PromptLog string
	ResultLog string
	// Console receives every entry at or above the console level. Defaults to
	// os.Stdout.
	Console io.Writer
}

// New builds a logger and returns a closer that flushes and releases every
// file it opened. The closer is safe to call on every exit path.
func New(opts Options) (*zap.Logger, func() error, error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(zapcore.AddSync(console)), level),
	}

	var files []*os.File
	closeFiles := func() error {
		var errs []error
		for _, f := range files {
			if err := f.Sync(); err != nil && !errors.Is(err, os.ErrClosed) {
				errs = append(errs, err)
			}
			if err := f.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		files = nil
		return errors.Join(errs...)
	}

	sinks := []struct {
		category Category
		path     string
	}{
		{CategoryPrompt, opts.PromptLog},
		{CategoryResult, opts.ResultLog},
	}
	for _, s := range sinks {
		if s.path == "" {
			continue
		}
		f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			closeFiles()
			return nil, nil, fmt.Errorf("opening %s log: %w", s.category, err)
		}
		files = append(files, f)
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(f), zapcore.DebugLevel)
		cores = append(cores, &categoryCore{Core: core, category: s.category})
	}

	logger := zap.New(zapcore.NewTee(cores...))
	closer := func() error {
		_ = logger.Sync()
		return closeFiles()
	}
	return logger, closer, nil
}

// For returns a child logger whose entries carry the given category.
func For(logger *zap.Logger, category Category) *zap.Logger {
	return logger.With(Field(category))
}

// Field returns the structured field that tags an entry with category.
func Field(category Category) zap.Field {
	return zap.String(FieldKey, string(category))
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	return cfg
}
