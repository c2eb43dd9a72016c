// Package config collects runtime settings from an optional .env file and the
// environment. Command-line flags take their defaults from the values loaded here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/advent-wins/internal/logger"
	"github.com/pfrederiksen/advent-wins/internal/pipeline"
	"github.com/pfrederiksen/advent-wins/internal/scraper"
)

// DateLayout is the format of ADVENT_EVENT_END
const DateLayout = "2006-01-02"

// Environment variable names
const (
	EnvDataDir        = "ADVENT_DATA_DIR"
	EnvSourceURL      = "ADVENT_SOURCE_URL"
	EnvRelayURL       = "ADVENT_RELAY_URL"
	EnvEventEnd       = "ADVENT_EVENT_END"
	EnvFallback       = "ADVENT_FALLBACK"
	EnvListen         = "ADVENT_LISTEN"
	EnvLogLevel       = "ADVENT_LOG_LEVEL"
	EnvTelegramToken  = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

// Config holds all runtime settings
type Config struct {
	DataDir        string
	SourceURL      string
	RelayURL       string
	EventEnd       time.Time
	Fallback       pipeline.Fallback
	Listen         string
	LogLevel       logger.Level
	TelegramToken  string
	TelegramChatID string
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		DataDir:   "~/.local/share/advent-wins",
		SourceURL: scraper.WinnersURL,
		RelayURL:  scraper.RelayURL,
		EventEnd:  pipeline.EventEnd,
		Fallback:  pipeline.FallbackError,
		Listen:    ":8080",
		LogLevel:  logger.LevelInfo,
	}
}

// Load reads envFiles (default ".env") into the environment without overriding
// variables that are already set, then builds a Config. Missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment on top of Default
func FromEnv() (*Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvSourceURL); v != "" {
		cfg.SourceURL = v
	}
	// An explicitly empty relay means fetching the page directly
	if v, ok := os.LookupEnv(EnvRelayURL); ok {
		cfg.RelayURL = v
	}
	if v := os.Getenv(EnvEventEnd); v != "" {
		t, err := ParseEventEnd(v)
		if err != nil {
			return nil, err
		}
		cfg.EventEnd = t
	}
	if v := os.Getenv(EnvFallback); v != "" {
		f, err := pipeline.ParseFallback(v)
		if err != nil {
			return nil, err
		}
		cfg.Fallback = f
	}
	if v := os.Getenv(EnvListen); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		level, err := logger.ParseLevel(v)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}
	cfg.TelegramToken = os.Getenv(EnvTelegramToken)
	cfg.TelegramChatID = os.Getenv(EnvTelegramChatID)

	return cfg, nil
}

// ParseEventEnd parses a cutoff date in DateLayout (UTC midnight)
func ParseEventEnd(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event end %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// TelegramEnabled reports whether both Telegram credentials are set
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}
