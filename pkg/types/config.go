// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultTemperature is the sampling temperature used when none is configured.
	DefaultTemperature = 0.5

	// DefaultMaxTokens is the completion token budget per request.
	DefaultMaxTokens = 900

	// DefaultBaseURL is the OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultAddr is the listen address for the web surface.
	DefaultAddr = "127.0.0.1:7860"
)

// GeneratorConfig holds the read-only settings for idea generation. It is
// loaded once at startup and passed by value into the generator.
type GeneratorConfig struct {
	// APIKey authenticates against the chat completions API. Empty disables
	// generation.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the chat model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// Temperature is the sampling temperature.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens caps the completion length (default 900).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// BaseURL is the API root; the client appends /chat/completions.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Timeout bounds a single API call. Zero means no client-side timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ServerConfig holds settings for the web surface.
type ServerConfig struct {
	// Addr is the host:port the HTTP server listens on.
	Addr string `json:"addr" yaml:"addr"`

	// RateLimit is the sustained number of generation requests per second
	// accepted by the JSON endpoint. Zero disables limiting.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// Burst is the number of requests allowed above RateLimit at once.
	Burst int `json:"burst" yaml:"burst"`
}

// Config groups everything loaded at startup.
type Config struct {
	OpenAI   GeneratorConfig `json:"openai" yaml:"openai"`
	Server   ServerConfig    `json:"server" yaml:"server"`
	LogLevel string          `json:"log_level" yaml:"log_level"`
}
