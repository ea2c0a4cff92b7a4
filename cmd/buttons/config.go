package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the demo configuration loaded from environment variables.
type Config struct {
	Title     string
	AltScreen bool

	// Logging. The terminal belongs to the UI, so logs go to a file or nowhere.
	LogLevel string // debug, info, warn, error
	LogFile  string

	// EventsFile receives the AG-UI state stream in SSE framing when set.
	EventsFile string
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		Title:      getEnvOrDefault("BUTTONS_TITLE", "My Favourite Hobby"),
		AltScreen:  getEnvBoolOrDefault("BUTTONS_ALT_SCREEN", true),
		LogLevel:   getEnvOrDefault("BUTTONS_LOG_LEVEL", "info"),
		LogFile:    os.Getenv("BUTTONS_LOG_FILE"),
		EventsFile: os.Getenv("BUTTONS_EVENTS_FILE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("BUTTONS_TITLE must not be blank")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Logger builds the slog logger described by the configuration. The returned
// closer releases the log file, if any.
func (c *Config) Logger() (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s (must be debug, info, warn, or error)", s)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
