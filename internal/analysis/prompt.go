package analysis

import (
	"fmt"
	"strings"

	"github.com/dshills/chunkprompt/internal/providers"
)

const refineSystemPrompt = `You help users analyze files that are too large to process at once. The file will be split into chunks of consecutive lines, each chunk will be analyzed on its own, and the per-chunk analyses will then be merged into one report.`

const chunkSystemPrompt = `You analyze the provided text according to the given instructions. The text is one chunk of a larger file; analyze only what is in this chunk.`

const compileSystemPrompt = `You compile individual chunk analyses of a large file into one comprehensive final report.`

// Generation parameters per request kind.
type params struct {
	temperature float64
	maxTokens   int
}

var (
	refineParams  = params{temperature: 0.3, maxTokens: 1000}
	analyzeParams = params{temperature: 0.5, maxTokens: 1500}
	compileParams = params{temperature: 0.3, maxTokens: 2000}
)

func (p params) request(model, system, user string) providers.CompletionRequest {
	return providers.CompletionRequest{
		Model: model,
		Messages: []providers.Message{
			{Role: providers.RoleSystem, Content: system},
			{Role: providers.RoleUser, Content: user},
		},
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		N:           1,
	}
}

// BuildRefineMessage asks the model to adapt userPrompt for chunked use.
func BuildRefineMessage(userPrompt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user wants to analyze a large file using the following prompt:\n\n\"%s\"\n\n", userPrompt)
	b.WriteString("Refine this prompt so that it can be applied to each chunk of the file independently. ")
	b.WriteString("Then write instructions for compiling the per-chunk analyses into the final report.\n\n")
	b.WriteString("Respond with exactly two sections: first the refined chunk prompt, then the compilation instructions. ")
	b.WriteString("Separate the two sections with a line containing only ---, with a blank line before and after it. ")
	b.WriteString("Do not use --- anywhere else in your response.")
	return b.String()
}

// BuildChunkMessage joins the chunk instruction and the chunk text.
func BuildChunkMessage(instruction, text string) string {
	return instruction + "\n\nText:\n" + text
}

// FormatPartials renders analyses in chunk order, each under its label,
// separated by blank lines.
func FormatPartials(partials []PartialResult) string {
	sections := make([]string, 0, len(partials))
	for _, p := range partials {
		sections = append(sections, fmt.Sprintf("--- %s ---\n%s\n", p.Label(), p.Analysis))
	}
	return strings.Join(sections, "\n\n")
}

// BuildCompileMessage embeds the compilation instruction and every analysis.
func BuildCompileMessage(instruction string, partials []PartialResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user has provided the following compilation instructions:\n\n\"%s\"\n\n", instruction)
	b.WriteString("Here are the individual analysis results from each chunk:\n\n")
	b.WriteString(FormatPartials(partials))
	b.WriteString("\n\nPlease compile them into a final comprehensive report.")
	return b.String()
}
