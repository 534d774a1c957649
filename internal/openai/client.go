// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openai calls the OpenAI chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/experiment-roulette/internal/httputil"
	"github.com/pdiddy/experiment-roulette/pkg/types"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrNoChoices is returned when a completion carries no choices.
var ErrNoChoices = errors.New("chat completion returned no choices")

// Message is a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body for POST /chat/completions.
type ChatRequest struct {
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Messages    []Message `json:"messages"`
}

type chatChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// APIError is a non-2xx response from the API. Message comes from the
// API's error payload when it has one.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("openai: status %d", e.StatusCode)
	}
	return fmt.Sprintf("openai: status %d: %s", e.StatusCode, e.Message)
}

// errorEnvelope is the {"error": {...}} body the API sends with failures.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// Client is a chat completions client. The zero value is not usable; build
// one with NewClient.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the API root and key in cfg. A nil
// httpClient gets a fresh http.Client with cfg.Timeout.
func NewClient(cfg types.GeneratorConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	base := cfg.BaseURL
	if base == "" {
		base = types.DefaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(base, "/"),
		http:    httpClient,
	}
}

// Complete sends one chat completion request and returns the content of the
// first choice. The call is made once; failures are not retried.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (string, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)

	var resp chatResponse
	err := httputil.DoJSON(ctx, c.http, http.MethodPost, c.baseURL+"/chat/completions", header, req, &resp)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			return "", decodeAPIError(se)
		}
		return "", fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func decodeAPIError(se *httputil.StatusError) *APIError {
	apiErr := &APIError{StatusCode: se.StatusCode}
	var env errorEnvelope
	if err := json.Unmarshal(se.Body, &env); err != nil || env.Error.Message == "" {
		apiErr.Message = strings.TrimSpace(string(se.Body))
		return apiErr
	}
	apiErr.Message = env.Error.Message
	apiErr.Type = env.Error.Type
	if env.Error.Code != nil {
		apiErr.Code = fmt.Sprint(env.Error.Code)
	}
	return apiErr
}
