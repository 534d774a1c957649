// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideas

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/experiment-roulette/internal/openai"
	"github.com/pdiddy/experiment-roulette/pkg/types"
)

// --- stub completer ---

type stubCompleter struct {
	reply string
	err   error
	calls int
	last  openai.ChatRequest
}

func (s *stubCompleter) Complete(_ context.Context, req openai.ChatRequest) (string, error) {
	s.calls++
	s.last = req
	return s.reply, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testGenConfig() types.GeneratorConfig {
	return types.GeneratorConfig{
		APIKey:      "sk-test",
		Model:       "test-model",
		Temperature: 0.7,
	}
}

func TestGenerateNoAPIKey(t *testing.T) {
	stub := &stubCompleter{reply: wellFormed}
	cfg := testGenConfig()
	cfg.APIKey = ""

	b := NewGenerator(cfg, stub, quietLogger()).Generate(context.Background(), "Checkout", types.SeriousnessQuirky, 5)

	assert.Equal(t, 0, stub.calls, "no network call without a key")
	require.Len(t, b.Ideas, 1)
	assert.Equal(t, "No API key", b.Ideas[0].Title)
	assert.Equal(t, "Set OPENAI_API_KEY", b.Ideas[0].Hypothesis)
	assert.Equal(t, "--", b.Ideas[0].MetricToTrack)
}

func TestGenerateClientError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("dial tcp: connection refused")}

	b := NewGenerator(testGenConfig(), stub, quietLogger()).Generate(context.Background(), "Checkout", types.SeriousnessWild, 3)

	assert.Equal(t, 1, stub.calls, "no retry")
	require.Len(t, b.Ideas, 1)
	assert.Equal(t, "Error", b.Ideas[0].Title)
	assert.Equal(t, "dial tcp: connection refused", b.Ideas[0].Hypothesis)
	assert.Equal(t, "--", b.Ideas[0].Seriousness)
}

func TestGenerateAPIError(t *testing.T) {
	apiErr := &openai.APIError{StatusCode: 401, Message: "Incorrect API key provided"}
	stub := &stubCompleter{err: apiErr}

	b := NewGenerator(testGenConfig(), stub, quietLogger()).Generate(context.Background(), "Checkout", types.SeriousnessWild, 3)

	require.Len(t, b.Ideas, 1)
	assert.Equal(t, "Error", b.Ideas[0].Title)
	assert.Equal(t, apiErr.Error(), b.Ideas[0].Hypothesis)
}

func TestGenerateRequest(t *testing.T) {
	stub := &stubCompleter{reply: wellFormed}

	NewGenerator(testGenConfig(), stub, quietLogger()).Generate(context.Background(), "Checkout flow", types.SeriousnessSerious, 4)

	require.Equal(t, 1, stub.calls)
	req := stub.last
	assert.Equal(t, "test-model", req.Model)
	assert.Equal(t, 0.7, req.Temperature)
	assert.Equal(t, 900, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.Message{Role: "system", Content: "You are a JSON-only idea generator."}, req.Messages[0])
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, BuildPrompt("Checkout flow", types.SeriousnessSerious, 4), req.Messages[1].Content)
}

func TestGenerateConfigDefaults(t *testing.T) {
	stub := &stubCompleter{reply: wellFormed}
	cfg := types.GeneratorConfig{APIKey: "k", MaxTokens: 300}

	NewGenerator(cfg, stub, nil).Generate(context.Background(), "x", types.SeriousnessQuirky, 1)

	assert.Equal(t, "gpt-4o-mini", stub.last.Model)
	assert.Equal(t, 300, stub.last.MaxTokens)
}

func TestGenerateNormalizesReply(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantTitle string
	}{
		{"plain json", wellFormed, "Progress bar"},
		{"fenced json", "```json\n" + wellFormed + "\n```", "Progress bar"},
		{"prose", "Sure! Here are some ideas.", "Parse error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCompleter{reply: tt.reply}
			b := NewGenerator(testGenConfig(), stub, quietLogger()).Generate(context.Background(), "Checkout", types.SeriousnessQuirky, 1)
			require.Len(t, b.Ideas, 1)
			assert.Equal(t, tt.wantTitle, b.Ideas[0].Title)
		})
	}
}
