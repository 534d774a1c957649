// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the experiment-roulette CLI: a small
// web app and command that turn a product context into A/B test ideas via the
// OpenAI chat completions API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	_ "go.uber.org/automaxprocs"

	"github.com/pdiddy/experiment-roulette/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// configErr holds a config file failure from initConfig; commands stop on it.
var configErr error

// logger is configured from log.level before any subcommand runs.
var logger = slog.Default()

// rootCmd is the base command for the experiment-roulette CLI.
var rootCmd = &cobra.Command{
	Use:   "experiment-roulette",
	Short: "Spin up quirky or serious A/B test ideas",
	Long: `experiment-roulette turns a short product context into A/B test ideas.
It asks an OpenAI chat model for a JSON list of ideas (title, hypothesis,
metric to track, estimated difficulty, seriousness) and always returns a
renderable result, even when the model answers with something else.

Use "serve" for the web form and "spin" for a one-off run in the terminal.
Configuration comes from OPENAI_API_KEY, OPENAI_MODEL and OPENAI_TEMPERATURE,
a .env file, an optional experiment-roulette.yaml, or .secrets/openai-api-key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}

		s, err := secrets.Load(secrets.DefaultDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		l, err := newLogger(viper.GetString("log.level"), os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./experiment-roulette.yaml or ~/.config/experiment-roulette/experiment-roulette.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// Variables already in the environment win over .env entries.
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded .env")
	}

	setDefaults(viper.GetViper())
	bindEnv(viper.GetViper())

	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "experiment-roulette"))
	}
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if err := readConfig(viper.GetViper(), cfgFile, dirs...); err != nil {
		configErr = err
		return
	}
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
