// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/experiment-roulette/internal/ideas"
	"github.com/pdiddy/experiment-roulette/internal/openai"
	"github.com/pdiddy/experiment-roulette/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the idea form in the browser",
	Long: `Serve starts the web form: a product context box, a seriousness selector
(serious, quirky, wild), an idea count slider (1-10), and a JSON panel showing
the generated ideas. The page posts to /api/ideas, which can also be called
directly. Stop with Ctrl-C; in-flight requests are allowed to finish.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; every spin will return a placeholder idea")
	}

	gen := ideas.NewGenerator(cfg.OpenAI, openai.NewClient(cfg.OpenAI, nil), logger)
	srv := web.NewServer(cfg.Server, gen, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:7860)")
	serveCmd.Flags().Float64("rate-limit", 0, "sustained spins per second accepted by /api/ideas (0 = unlimited)")
	serveCmd.Flags().Int("burst", 0, "spins allowed above the rate limit at once")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.rate_limit", serveCmd.Flags().Lookup("rate-limit"))
	_ = viper.BindPFlag("server.burst", serveCmd.Flags().Lookup("burst"))

	rootCmd.AddCommand(serveCmd)
}
