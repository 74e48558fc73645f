package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds CLI settings. Precedence, lowest first: defaults, YAML file,
// environment (including .env), flags.
type Config struct {
	LogLevel     string `yaml:"log_level"`
	Addr         string `yaml:"addr"`
	Concurrency  int    `yaml:"concurrency"`
	InputFormat  string `yaml:"input_format"`
	OutputFormat string `yaml:"output_format"`
	Corpus       string `yaml:"corpus"`
	Tolerance    int    `yaml:"tolerance"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:     "info",
		Addr:         ":8080",
		InputFormat:  "text",
		OutputFormat: "text",
		Corpus:       "testdata/corpus",
	}
}

// loadConfig reads .env (if present), the YAML file named by path or
// SEGOPT_CONFIG (if any), then SEGOPT_* environment variables.
func loadConfig(path string) (Config, error) {
	// Best-effort: a missing .env is not an error.
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("SEGOPT_CONFIG"))
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("SEGOPT_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("SEGOPT_ADDR")); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("SEGOPT_CONCURRENCY")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("SEGOPT_CONCURRENCY: %w", err)
		}
		cfg.Concurrency = n
	}

	return cfg, nil
}

var errBadLevel = errors.New("unknown log level")

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "", "info":
		l = slog.LevelInfo
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return nil, fmt.Errorf("%w: %q", errBadLevel, level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}
