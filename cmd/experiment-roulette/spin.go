// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/experiment-roulette/internal/ideas"
	"github.com/pdiddy/experiment-roulette/internal/openai"
	"github.com/pdiddy/experiment-roulette/pkg/types"
)

var spinCmd = &cobra.Command{
	Use:   "spin",
	Short: "Generate one batch of ideas and print it",
	Long: `Spin runs a single generation for the given product context and prints
the idea batch as JSON (default) or YAML. Like the web form it always prints
a batch: a missing key, an API failure, or unparseable model output each
produce one placeholder idea describing the problem.`,
	Example: `  experiment-roulette spin --context "Checkout flow" --seriousness wild --count 3
  experiment-roulette spin --context "Onboarding emails" --format yaml`,
	RunE: runSpin,
}

func runSpin(cmd *cobra.Command, args []string) error {
	productContext, _ := cmd.Flags().GetString("context")
	seriousness, _ := cmd.Flags().GetString("seriousness")
	count, _ := cmd.Flags().GetInt("count")
	format, _ := cmd.Flags().GetString("format")

	s := types.Seriousness(seriousness)
	if !s.Valid() {
		return fmt.Errorf("unsupported seriousness %q: use serious, quirky, or wild", seriousness)
	}
	if count < types.MinIdeaCount || count > types.MaxIdeaCount {
		return fmt.Errorf("count must be between %d and %d, got %d", types.MinIdeaCount, types.MaxIdeaCount, count)
	}
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gen := ideas.NewGenerator(cfg.OpenAI, openai.NewClient(cfg.OpenAI, nil), logger)
	batch := gen.Generate(cmd.Context(), productContext, s, count)

	return writeBatch(os.Stdout, batch, format)
}

// writeBatch prints batch in the requested format.
func writeBatch(w io.Writer, batch types.IdeaBatch, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(batch); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(batch)
	}
}

func init() {
	spinCmd.Flags().String("context", "", "product context, e.g. \"Checkout flow\"")
	spinCmd.Flags().String("seriousness", string(types.DefaultSeriousness), "tone: serious, quirky, or wild")
	spinCmd.Flags().Int("count", types.DefaultIdeaCount, "number of ideas to request (1-10)")
	spinCmd.Flags().String("format", "json", "output format: json or yaml")

	rootCmd.AddCommand(spinCmd)
}
