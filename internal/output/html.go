package output

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/dshills/chunkprompt/internal/analysis"
)

// HTMLWriter renders the markdown report to a standalone HTML page.
// Model-written text is escaped; only the report's own markup is raw HTML.
type HTMLWriter struct{}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

func (h *HTMLWriter) Write(w io.Writer, report *analysis.Report) error {
	var src bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&src, escapeModelText(report)); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := markdown.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	ew := &errWriter{w: w}
	ew.print("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	ew.printf("<title>%s</title>\n", html.EscapeString(analysis.ReportTitle))
	ew.print("</head>\n<body>\n")
	ew.print(body.String())
	ew.print("</body>\n</html>\n")
	return ew.err
}

// escapeModelText returns a copy of report with the compiled body and every
// chunk analysis HTML-escaped.
func escapeModelText(report *analysis.Report) *analysis.Report {
	safe := *report
	safe.Body = html.EscapeString(report.Body)
	safe.Partials = make([]analysis.PartialResult, len(report.Partials))
	for i, p := range report.Partials {
		p.Analysis = html.EscapeString(p.Analysis)
		safe.Partials[i] = p
	}
	return &safe
}
