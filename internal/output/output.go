package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dshills/chunkprompt/internal/analysis"
)

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *analysis.Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "", "text":
		return &TextWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "html":
		return &HTMLWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// FileSink writes reports to Path in Format.
type FileSink struct {
	Path   string
	Format string
}

// NewFileSink validates format and returns a sink for path.
func NewFileSink(path, format string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if _, err := GetWriter(format); err != nil {
		return nil, err
	}
	return &FileSink{Path: path, Format: format}, nil
}

// Write renders report into a temp file next to Path and renames it over
// Path. On failure the destination is left untouched.
func (s *FileSink) Write(report *analysis.Report) error {
	writer, err := GetWriter(s.Format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".chunkprompt-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := writer.Write(tmp, report); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	_ = os.Chmod(tmpPath, 0o644)

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.Path, err)
	}
	committed = true
	return nil
}
