package output

import (
	"github.com/dshills/chunkprompt/internal/analysis"
)

func sampleReport() *analysis.Report {
	return &analysis.Report{
		Tool:      "chunkprompt",
		Version:   "1.0",
		RunID:     "run-123",
		File:      "big.log",
		Provider:  "openai",
		Model:     "gpt-4",
		ChunkSize: 1000,
		Prompt:    "summarize",
		Refined: analysis.RefinedPrompt{
			ChunkInstruction:       "Summarize this chunk.",
			CompilationInstruction: "Merge the summaries.",
			Split:                  true,
		},
		Partials: []analysis.PartialResult{
			{ChunkIndex: 1, StartLine: 1, Lines: 1000, Analysis: "Startup noise.", Attempts: 1},
			{ChunkIndex: 2, StartLine: 1001, Lines: 500, Analysis: analysis.ChunkFallback, Attempts: 5, Degraded: true},
		},
		DegradedChunks: 1,
		Body:           "The log shows a clean startup.",
		Timing:         analysis.Timing{RefineMs: 10, AnalyzeMs: 200, CompileMs: 30, TotalMs: 240},
	}
}
