package output

import (
	"io"
	"strings"
	"time"

	"github.com/dshills/chunkprompt/internal/analysis"
)

// MarkdownWriter outputs the report with run metadata and collapsible
// per-chunk analyses.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *analysis.Report) error {
	ew := &errWriter{w: w}

	ew.printf("# %s\n\n", analysis.ReportTitle)

	ew.printf("| Field | Value |\n")
	ew.printf("|-------|-------|\n")
	ew.printf("| File | `%s` |\n", report.File)
	ew.printf("| Provider | %s |\n", report.Provider)
	ew.printf("| Model | %s |\n", report.Model)
	ew.printf("| Chunk size | %d lines |\n", report.ChunkSize)
	ew.printf("| Chunks | %d |\n", len(report.Partials))
	ew.printf("| Degraded chunks | %d |\n", report.DegradedChunks)
	ew.printf("| Run | `%s` |\n\n", report.RunID)

	if report.CompilationFailed {
		ew.printf("> **Warning:** the final report could not be compiled.\n\n")
	}

	ew.printf("## Report\n\n%s\n\n", report.Body)

	if len(report.Partials) > 0 {
		ew.printf("## Chunk analyses\n\n")
	}
	for _, p := range report.Partials {
		status := ""
		if p.Degraded {
			status = " (unavailable)"
		}
		end := p.StartLine + p.Lines - 1
		ew.printf("<details>\n<summary>%s, lines %d-%d%s</summary>\n\n", p.Label(), p.StartLine, end, status)
		ew.printf("%s\n\n</details>\n\n", strings.TrimSpace(p.Analysis))
	}

	ew.printf("*Analyzed in %s (refine: %dms, chunks: %dms, compile: %dms)*\n",
		(time.Duration(report.Timing.TotalMs) * time.Millisecond).String(),
		report.Timing.RefineMs, report.Timing.AnalyzeMs, report.Timing.CompileMs)

	return ew.err
}
