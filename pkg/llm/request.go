// Package llm provides internal representations of the text generation API
// requests and responses exchanged with the completion service.
package llm

// GenerateRequest represents a single-prompt generation request (Cohere-compatible).
type GenerateRequest struct {
	Model       string  `json:"model"`       // Model name (e.g., "command-xlarge")
	Prompt      string  `json:"prompt"`      // Full prompt text
	MaxTokens   int     `json:"max_tokens"`  // Cap on generated tokens
	Temperature float64 `json:"temperature"` // Sampling randomness (0.0-1.0)
}
