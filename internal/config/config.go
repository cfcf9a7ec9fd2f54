// Package config loads render defaults from the environment, with an
// optional .env file of overrides — the same environment-variable-driven
// shape the teacher uses for its encryption/db settings, repurposed here
// for rendering.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the defaults a render applies when the caller doesn't
// override them on the command line.
type Config struct {
	// Language is the default target-language adapter name.
	Language string
	// Indent overrides an adapter's default indent unit when non-empty.
	Indent string
	// LineEnding overrides an adapter's default line ending when non-empty.
	LineEnding string
	// HistoryDSN is the sqlite DSN the render-history store connects to.
	// Empty disables history recording.
	HistoryDSN string
	// Debug enables verbose logging in the CLI and MCP server.
	Debug bool
}

// Load reads environment variables into a Config, first loading envPath
// (typically ".env") if present so its values populate the process
// environment before the lookups below run. A missing envPath is not an
// error — it's the common case outside development.
func Load(envPath string) *Config {
	if envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		Language:   os.Getenv("QUASIGEN_LANGUAGE"),
		Indent:     os.Getenv("QUASIGEN_INDENT"),
		LineEnding: os.Getenv("QUASIGEN_LINE_ENDING"),
		HistoryDSN: os.Getenv("QUASIGEN_HISTORY_DSN"),
		Debug:      os.Getenv("QUASIGEN_DEBUG") == "1" || os.Getenv("QUASIGEN_DEBUG") == "true",
	}

	if cfg.Language == "" {
		cfg.Language = "go"
	}

	return cfg
}
