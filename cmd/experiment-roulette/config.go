// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/pdiddy/experiment-roulette/internal/secrets"
	"github.com/pdiddy/experiment-roulette/pkg/types"
)

// envPrefix scopes automatic environment lookups, e.g.
// EXPERIMENT_ROULETTE_SERVER_ADDR for server.addr.
const envPrefix = "EXPERIMENT_ROULETTE"

// configName is the config file name searched for, without extension.
const configName = "experiment-roulette"

// openAIEnv maps config keys to the conventional OpenAI variable names.
var openAIEnv = map[string]string{
	"openai.api_key":     "OPENAI_API_KEY",
	"openai.model":       "OPENAI_MODEL",
	"openai.temperature": "OPENAI_TEMPERATURE",
}

// readConfig reads cfgFile, or searches dirs for experiment-roulette.yaml when
// cfgFile is empty. Not finding a searched file is fine; an explicit file
// that cannot be read is an error.
func readConfig(v *viper.Viper, cfgFile string, dirs ...string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("openai.model", types.DefaultModel)
	v.SetDefault("openai.temperature", types.DefaultTemperature)
	v.SetDefault("openai.max_tokens", types.DefaultMaxTokens)
	v.SetDefault("openai.base_url", types.DefaultBaseURL)
	v.SetDefault("openai.timeout", "0s")
	v.SetDefault("server.addr", types.DefaultAddr)
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.burst", 1)
	v.SetDefault("log.level", "info")
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range openAIEnv {
		_ = v.BindEnv(key, env)
	}
}

// secretDefault returns value when set, otherwise the named secret from
// .secrets/, otherwise "".
func secretDefault(value string, loaded map[string]string, name string) string {
	if value != "" {
		return value
	}
	return loaded[name]
}

// configFrom resolves the startup configuration. Values are read once; the
// result is passed by value to everything that needs it.
func configFrom(v *viper.Viper, loaded map[string]string) (types.Config, error) {
	temperature, err := cast.ToFloat64E(v.Get("openai.temperature"))
	if err != nil {
		return types.Config{}, fmt.Errorf("parsing openai.temperature: %w", err)
	}
	maxTokens, err := cast.ToIntE(v.Get("openai.max_tokens"))
	if err != nil {
		return types.Config{}, fmt.Errorf("parsing openai.max_tokens: %w", err)
	}
	timeout, err := cast.ToDurationE(v.Get("openai.timeout"))
	if err != nil {
		return types.Config{}, fmt.Errorf("parsing openai.timeout: %w", err)
	}
	rateLimit, err := cast.ToFloat64E(v.Get("server.rate_limit"))
	if err != nil {
		return types.Config{}, fmt.Errorf("parsing server.rate_limit: %w", err)
	}

	return types.Config{
		OpenAI: types.GeneratorConfig{
			APIKey:      secretDefault(v.GetString("openai.api_key"), loaded, secrets.OpenAIAPIKey),
			Model:       v.GetString("openai.model"),
			Temperature: temperature,
			MaxTokens:   maxTokens,
			BaseURL:     v.GetString("openai.base_url"),
			Timeout:     timeout,
		},
		Server: types.ServerConfig{
			Addr:      v.GetString("server.addr"),
			RateLimit: rateLimit,
			Burst:     v.GetInt("server.burst"),
		},
		LogLevel: v.GetString("log.level"),
	}, nil
}

// loadConfig resolves the configuration from the global viper instance.
func loadConfig() (types.Config, error) {
	return configFrom(viper.GetViper(), loadedSecrets)
}

// newLogger builds the text logger used by every subcommand.
func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
