// Package completion wraps the single outbound call to the hosted text
// generation service.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/babybot/pkg/llm"
)

const (
	DefaultBaseURL     = "https://api.cohere.ai"
	DefaultModel       = "command-xlarge"
	DefaultMaxTokens   = 100
	DefaultTemperature = 0.8
	DefaultTimeout     = 30 * time.Second

	generatePath = "/v1/generate"
)

// Config holds the credential and generation parameters for the Client.
type Config struct {
	// APIKey is the bearer credential for the completion service. Required.
	APIKey string

	// BaseURL of the service, without a trailing path (e.g., "https://api.cohere.ai").
	BaseURL string

	Model       string
	MaxTokens   int
	Temperature float64

	// Timeout bounds a single completion call, including reading the body.
	Timeout time.Duration
}

// Client performs completions against a Cohere-compatible generate endpoint.
// It is built once at startup and shared by every Turn Controller.
type Client struct {
	config     Config
	logger     *zap.Logger
	httpClient *http.Client
}

// New validates the config, fills defaults and returns a Client.
// A missing credential yields a *ConfigurationError.
func New(config Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, &ConfigurationError{Field: "api key", Reason: "no credential available"}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if config.MaxTokens < 0 {
		return nil, &ConfigurationError{Field: "max tokens", Reason: "must be positive"}
	}
	if config.Temperature < 0 || config.Temperature > 1 {
		return nil, &ConfigurationError{Field: "temperature", Reason: "must be within [0, 1]"}
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Model returns the configured generation model.
func (c *Client) Model() string {
	return c.config.Model
}

// Complete sends promptText to the service and returns the first generated
// candidate trimmed of surrounding whitespace. It makes exactly one request
// and never retries.
func (c *Client) Complete(ctx context.Context, promptText string) (string, error) {
	startTime := time.Now()

	req := llm.GenerateRequest{
		Model:       c.config.Model,
		Prompt:      promptText,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", &UpstreamError{Op: "marshal request", Err: err}
	}

	url := c.config.BaseURL + generatePath
	c.logger.Debug("sending completion request",
		zap.String("url", url),
		zap.String("model", req.Model),
		zap.Int("prompt_size", len(promptText)),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", &UpstreamError{Op: "create request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &UpstreamError{Op: "do request", Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", &UpstreamError{Op: "read response", StatusCode: httpResp.StatusCode, Err: err}
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", &UpstreamError{
			Op:         "generate",
			StatusCode: httpResp.StatusCode,
			Err:        errors.New(upstreamMessage(body)),
		}
	}

	var resp llm.GenerateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &UpstreamError{Op: "decode response", StatusCode: httpResp.StatusCode, Err: err}
	}

	if len(resp.Generations) == 0 {
		return "", &UpstreamError{Op: "generate", Err: errors.New("no generations returned")}
	}

	text := strings.TrimSpace(resp.Generations[0].Text)

	c.logger.Debug("received completion",
		zap.String("id", resp.ID),
		zap.Int("candidates", len(resp.Generations)),
		zap.String("content_preview", truncate(text, 100)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return text, nil
}

// upstreamMessage extracts a readable message from an error body, falling back
// to the raw body.
func upstreamMessage(body []byte) string {
	var errResp llm.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Message != "" {
			return errResp.Message
		}
		if errResp.Error != "" {
			return errResp.Error
		}
	}
	return fmt.Sprintf("%q", truncate(string(body), 200))
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
