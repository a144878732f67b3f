package llm

// GenerateResponse represents a generation response (Cohere-compatible).
type GenerateResponse struct {
	ID          string       `json:"id"`
	Generations []Generation `json:"generations"` // Candidates, best first
	Prompt      string       `json:"prompt,omitempty"`
	Meta        *Meta        `json:"meta,omitempty"`
}

// Generation is one generated candidate.
type Generation struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason,omitempty"`
}

// Meta carries API bookkeeping returned alongside generations.
type Meta struct {
	APIVersion *struct {
		Version string `json:"version"`
	} `json:"api_version,omitempty"`
	BilledUnits *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"billed_units,omitempty"`
}
