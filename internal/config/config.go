// Package config reads the environment defaults for the cwatermark CLI.
// Command-line flags take precedence over every value loaded here.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	LogLevel string
	Quality  int
	Engine   string
	Filter   string
	Opacity  float64
}

func Load() *Config {
	return &Config{
		LogLevel: envOr("LOG_LEVEL", "info"),
		Quality:  envIntOr("WATERMARK_JPEG_QUALITY", 75),
		Engine:   envOr("WATERMARK_ENGINE", "imaging"),
		Filter:   envOr("WATERMARK_FILTER", "bicubic"),
		Opacity:  envFloatOr("WATERMARK_OPACITY", 1),
	}
}

// SlogLevel maps LogLevel to a slog level; unknown names mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
