package analysis

import (
	"fmt"
	"time"
)

// Fixed report and placeholder text.
const (
	ReportTitle = "ChatGPT Long File Analysis Report"
	ReportRule  = "================================="

	ChunkFallback                 = "Analysis not available due to API errors."
	CompilationFallback           = "Final report compilation failed due to API errors."
	DefaultCompilationInstruction = "Please compile the analysis results from all chunks into a final comprehensive report."
)

// RefinedPrompt is the pair of instructions derived from the user's prompt.
type RefinedPrompt struct {
	ChunkInstruction       string `json:"chunkInstruction"`
	CompilationInstruction string `json:"compilationInstruction"`
	// Split is false when the model response had no delimiter and the
	// default compilation instruction was substituted.
	Split bool `json:"split"`
}

// PartialResult is the analysis of one chunk.
type PartialResult struct {
	ChunkIndex int    `json:"chunkIndex"`
	StartLine  int    `json:"startLine"`
	Lines      int    `json:"lines"`
	Analysis   string `json:"analysis"`
	Attempts   int    `json:"attempts"`
	Degraded   bool   `json:"degraded"`
}

// Label returns the human-readable chunk label.
func (p PartialResult) Label() string {
	return fmt.Sprintf("Analysis for Chunk %d", p.ChunkIndex)
}

// Report is the terminal artifact of a run.
type Report struct {
	Tool      string    `json:"tool"`
	Version   string    `json:"version"`
	RunID     string    `json:"runId"`
	CreatedAt time.Time `json:"createdAt"`

	File      string `json:"file"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	ChunkSize int    `json:"chunkSize"`
	Prompt    string `json:"prompt"`

	Refined           RefinedPrompt   `json:"refined"`
	Partials          []PartialResult `json:"partials"`
	DegradedChunks    int             `json:"degradedChunks"`
	CompilationFailed bool            `json:"compilationFailed"`

	// Body is the compiled report text, or CompilationFallback.
	Body string `json:"body"`

	Timing Timing `json:"timing"`
}

// Timing records per-phase wall-clock durations.
type Timing struct {
	RefineMs  int64 `json:"refineMs"`
	AnalyzeMs int64 `json:"analyzeMs"`
	CompileMs int64 `json:"compileMs"`
	TotalMs   int64 `json:"totalMs"`
}

// Header returns the fixed two-line report header followed by a blank line.
func Header() string {
	return ReportTitle + "\n" + ReportRule + "\n\n"
}

// Sink persists a finished report.
type Sink interface {
	Write(report *Report) error
}
