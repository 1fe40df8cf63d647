package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Gobd/valerror/app"
	"gopkg.in/yaml.v3"
)

// fileConfig is the demo's YAML configuration.
//
//	addr: ":8080"
//	log_level: debug
//	app:
//	  title: Demo API
//	  validate_params: true
//	errors:
//	  code: INVALID_REQUEST
//	  include_types: true
type fileConfig struct {
	Addr     string     `yaml:"addr"`
	LogLevel string     `yaml:"log_level"`
	App      app.Config `yaml:"app"`
	Errors   struct {
		Code           string `yaml:"code"`
		IncludeTypes   bool   `yaml:"include_types"`
		EveryOperation bool   `yaml:"every_operation"`
	} `yaml:"errors"`
}

func defaultConfig() fileConfig {
	var cfg fileConfig
	cfg.Addr = ":8080"
	cfg.LogLevel = "info"
	cfg.App = app.Config{
		Title:          "valerror demo",
		Description:    "Validation failures answered with a 400 envelope",
		Version:        "0.1.0",
		ValidateParams: true,
	}
	return cfg
}

// loadConfig reads path over the defaults. An empty path keeps the defaults.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c fileConfig) logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
