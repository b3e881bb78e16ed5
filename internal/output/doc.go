// Package output renders analysis reports and persists them.
//
// Four formats are supported:
//   - text: the fixed report header followed by the compiled body (default)
//   - markdown: run metadata, the body, and collapsible per-chunk analyses
//   - json: the full structured report
//   - html: the markdown rendering converted to a standalone HTML page
//
// Use [GetWriter] to obtain a [Writer] for a format string. [FileSink]
// implements analysis.Sink and replaces its destination atomically.
package output
