package config

import (
	"log/slog"
	"os"
	"strings"
)

// Environment variable names recognized as overrides.
const (
	EnvSource   = "BLOGBUILDER_SOURCE"
	EnvOutput   = "BLOGBUILDER_OUTPUT"
	EnvBaseURL  = "BLOGBUILDER_BASE_URL"
	EnvLogLevel = "BLOGBUILDER_LOG_LEVEL"
)

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvSource); v != "" {
		c.Build.Source = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Build.Output = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Site.BaseURL = v
	}
}

// LogLevel resolves the slog level from the verbose flag and the
// BLOGBUILDER_LOG_LEVEL environment variable. The env var wins so operators
// can turn up logging without changing invocations.
func LogLevel(verbose bool) slog.Level {
	switch strings.ToLower(os.Getenv(EnvLogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
