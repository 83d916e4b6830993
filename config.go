package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/futuroattore86/Ale-Abbey-Beer-Tycoon-Calculator/optimizer"
)

// fileConfig is the YAML configuration file. Unset keys keep their defaults.
//
//	max_quantity: 9
//	unit_budget: 25
//	workers: 4
//	partition: prefix
//	chunks_per_worker: 16
//	memo_size: 0
//	log_level: info
//	scoring:
//	  tolerance: 0.05
//	  penalty: 10000
//	  value_weight: 10
//	  position_weight: 100
type fileConfig struct {
	optimizer.Config `yaml:",inline"`

	LogLevel string `yaml:"log_level"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{Config: optimizer.DefaultConfig(), LogLevel: "info"}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
