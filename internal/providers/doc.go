// Package providers implements the Completer interface for each supported LLM
// provider.
//
// Supported providers: OpenAI (GPT), Anthropic (Claude), Google (Gemini, via
// the genai SDK), and Ollama / LMStudio for local models.
//
// Providers make exactly one attempt per call and classify failures so that
// callers can decide on a retry policy: [IsRateLimit] for throttling,
// [IsAuthError] for credential problems, and [*APIError] for any other
// non-success response. HTTP clients are injected via a field so that tests
// can redirect calls to local httptest servers without making live API
// requests.
//
// Use [New] to obtain a Completer by provider name and model string.
package providers
