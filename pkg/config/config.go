// Package config loads babybot's startup configuration: an optional TOML file,
// the process environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/papercomputeco/babybot/pkg/chat"
	"github.com/papercomputeco/babybot/pkg/completion"
	"github.com/papercomputeco/babybot/pkg/topic"
)

const (
	// APIKeyEnv holds the completion service credential.
	APIKeyEnv = "COHERE_API_KEY"

	// BaseURLEnv overrides Completion.BaseURL.
	BaseURLEnv = "COHERE_BASE_URL"

	// ListenEnv overrides Server.ListenAddr.
	ListenEnv = "BABYBOT_LISTEN"

	// DefaultPath is the config file looked up when no path is given.
	DefaultPath = "babybot.toml"

	DefaultListenAddr = ":8051"
)

// ServerConfig configures the web presentation layer.
type ServerConfig struct {
	// Address to listen on (e.g., ":8051")
	ListenAddr string `toml:"listen"`

	// SessionIdleMinutes is how long an untouched browser session is kept.
	SessionIdleMinutes int `toml:"session_idle_minutes"`
}

// CompletionConfig configures the completion client. The credential is never
// read from the file, only from the environment.
type CompletionConfig struct {
	BaseURL        string  `toml:"base_url"`
	Model          string  `toml:"model"`
	MaxTokens      int     `toml:"max_tokens"`
	Temperature    float64 `toml:"temperature"`
	TimeoutSeconds int     `toml:"timeout_seconds"`

	APIKey string `toml:"-"`
}

// TopicConfig holds the keyword allow-list.
type TopicConfig struct {
	Keywords []string `toml:"keywords"`
}

// MessagesConfig holds the fixed user-facing texts.
type MessagesConfig struct {
	Welcome   string `toml:"welcome"`
	Cleared   string `toml:"cleared"`
	Rejection string `toml:"rejection"`
	Failure   string `toml:"failure"`
}

// Config is the top-level configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Completion CompletionConfig `toml:"completion"`
	Topic      TopicConfig      `toml:"topic"`
	Messages   MessagesConfig   `toml:"messages"`
}

// ConfigurationError reports a missing credential or an invalid setting.
// The process must not start when Load returns one.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Field + ": " + e.Reason
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:         DefaultListenAddr,
			SessionIdleMinutes: 120,
		},
		Completion: CompletionConfig{
			BaseURL:        completion.DefaultBaseURL,
			Model:          completion.DefaultModel,
			MaxTokens:      completion.DefaultMaxTokens,
			Temperature:    completion.DefaultTemperature,
			TimeoutSeconds: int(completion.DefaultTimeout / time.Second),
		},
		Topic: TopicConfig{
			Keywords: append([]string(nil), topic.DefaultKeywords...),
		},
		Messages: MessagesConfig{
			Welcome:   "👶 Welcome to BabyBot! Let’s giggle and babble together!",
			Cleared:   "Welcome to the chatbot! Ask me anything.",
			Rejection: chat.DefaultRejectionMessage,
			Failure:   chat.DefaultFailureMessage,
		},
	}
}

// Load builds the configuration. path may be empty, in which case DefaultPath
// is used if it exists. A .env file in the working directory is loaded first
// without overriding variables that are already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env: %w", err)
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, fmt.Errorf("could not read config file %s: %w", path, err)
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadTOML decodes the TOML file at path over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return &ConfigurationError{Field: "file", Reason: "unknown keys: " + strings.Join(keys, ", ")}
	}

	return nil
}

// ApplyEnv overlays environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.Completion.APIKey = strings.TrimSpace(getenv(APIKeyEnv))

	if v := getenv(BaseURLEnv); v != "" {
		c.Completion.BaseURL = v
	}
	if v := getenv(ListenEnv); v != "" {
		c.Server.ListenAddr = v
	}
}

// Validate checks every setting the process needs before it can start.
func (c *Config) Validate() error {
	if c.Completion.APIKey == "" {
		return &ConfigurationError{Field: APIKeyEnv, Reason: "credential not found in environment or .env file"}
	}
	if c.Completion.MaxTokens <= 0 {
		return &ConfigurationError{Field: "completion.max_tokens", Reason: "must be positive"}
	}
	if c.Completion.Temperature < 0 || c.Completion.Temperature > 1 {
		return &ConfigurationError{Field: "completion.temperature", Reason: "must be within [0, 1]"}
	}
	if c.Completion.TimeoutSeconds <= 0 {
		return &ConfigurationError{Field: "completion.timeout_seconds", Reason: "must be positive"}
	}
	if topic.New(c.Topic.Keywords).Len() == 0 {
		return &ConfigurationError{Field: "topic.keywords", Reason: "at least one non-empty keyword is required"}
	}
	if c.Server.ListenAddr == "" {
		return &ConfigurationError{Field: "server.listen", Reason: "must not be empty"}
	}
	return nil
}

// CompletionClientConfig converts the completion section for completion.New.
func (c *Config) CompletionClientConfig() completion.Config {
	return completion.Config{
		APIKey:      c.Completion.APIKey,
		BaseURL:     c.Completion.BaseURL,
		Model:       c.Completion.Model,
		MaxTokens:   c.Completion.MaxTokens,
		Temperature: c.Completion.Temperature,
		Timeout:     time.Duration(c.Completion.TimeoutSeconds) * time.Second,
	}
}

// SessionIdleTimeout returns Server.SessionIdleMinutes as a duration.
func (c *Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.Server.SessionIdleMinutes) * time.Minute
}

// ControllerOptions returns the chat options derived from the messages section.
func (c *Config) ControllerOptions() []chat.Option {
	return []chat.Option{
		chat.WithRejectionMessage(c.Messages.Rejection),
		chat.WithFailureMessage(c.Messages.Failure),
	}
}
