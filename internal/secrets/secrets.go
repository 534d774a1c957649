// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials kept as plain-text files in a local
// directory (default .secrets/). The filename is the key name and the trimmed
// file contents are the value, so keys never need to live in a shell profile
// or a committed config file.
//
// Supported key files: openai-api-key.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is where the CLI looks for key files.
const DefaultDir = ".secrets"

// OpenAIAPIKey is the key file holding the chat completions API key.
const OpenAIAPIKey = "openai-api-key"

// Load reads every regular, non-hidden file in dir into a map of name to
// trimmed contents. A missing directory yields an empty map. Files that
// cannot be read are logged and skipped; empty files are omitted.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		value, err := read(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("skipping unreadable secret", "name", name, "error", err)
			continue
		}
		if value != "" {
			out[name] = value
		}
	}
	return out, nil
}

func read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
