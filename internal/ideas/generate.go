// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ideas turns a product context into A/B test ideas: it renders the
// generation prompt, calls the chat completions backend once, and normalizes
// whatever text comes back into a renderable idea batch.
package ideas

import (
	"context"
	"log/slog"

	"github.com/pdiddy/experiment-roulette/internal/openai"
	"github.com/pdiddy/experiment-roulette/pkg/types"
)

// Fallback titles for the two failure paths that never reach the normalizer.
const (
	NoAPIKeyTitle = "No API key"
	NoAPIKeyHint  = "Set OPENAI_API_KEY"
	ErrorTitle    = "Error"
)

// Completer abstracts the chat completions API so tests can supply a stub.
// Complete returns the text of the first choice.
type Completer interface {
	Complete(ctx context.Context, req openai.ChatRequest) (string, error)
}

// Generator produces idea batches. It holds no mutable state and is safe for
// concurrent use.
type Generator struct {
	cfg    types.GeneratorConfig
	client Completer
	log    *slog.Logger
}

// NewGenerator returns a Generator using cfg for every request. Empty Model
// and non-positive MaxTokens fall back to the package defaults. A nil logger
// uses slog.Default.
func NewGenerator(cfg types.GeneratorConfig, client Completer, logger *slog.Logger) *Generator {
	if cfg.Model == "" {
		cfg.Model = types.DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = types.DefaultMaxTokens
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{cfg: cfg, client: client, log: logger}
}

// Generate asks the model for count ideas about productContext. It always
// returns a renderable batch: a missing API key, a failed call, and
// unparseable output each produce a single fallback idea instead of an error.
func (g *Generator) Generate(ctx context.Context, productContext string, seriousness types.Seriousness, count int) types.IdeaBatch {
	if g.cfg.APIKey == "" {
		g.log.Warn("generation skipped", "reason", "no api key")
		return types.FallbackBatch(NoAPIKeyTitle, NoAPIKeyHint)
	}

	req := openai.ChatRequest{
		Model:       g.cfg.Model,
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
		Messages: []openai.Message{
			{Role: openai.RoleSystem, Content: SystemPrompt},
			{Role: openai.RoleUser, Content: BuildPrompt(productContext, seriousness, count)},
		},
	}

	raw, err := g.client.Complete(ctx, req)
	if err != nil {
		g.log.Warn("generation failed", "model", g.cfg.Model, "error", err)
		return types.FallbackBatch(ErrorTitle, err.Error())
	}

	res := Normalize(raw)
	if !res.OK() {
		g.log.Warn("unparseable model output", "model", g.cfg.Model, "failure", string(res.Failure), "bytes", len(raw))
		return res.Batch
	}

	g.log.Debug("generated ideas", "model", g.cfg.Model, "requested", count, "returned", len(res.Batch.Ideas))
	return res.Batch
}
