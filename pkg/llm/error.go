package llm

// ErrorResponse represents an error body from the completion API or from
// babybot's own HTTP endpoints.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
