package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/llm"
)

// loadConfig merges an optional config file with defaults.
func loadConfig(path string) (config.Config, error) {
	defaults := config.Defaults()
	if path == "" {
		return defaults, nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}
	merged := cfg.MergeWithDefaults(defaults)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// resolveAPIKey prefers the flag, then the environment.
func resolveAPIKey(flagValue string, cfg config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

// newExtractor builds the extraction client, or returns nil when no API key
// is available so callers degrade to the offline paths.
func newExtractor(ctx context.Context, apiKey string, cfg config.Config) (*extraction.Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := llm.NewGeminiClient(ctx, apiKey, cfg.Model, time.Duration(cfg.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return extraction.New(client, extraction.Options{
		MaxKeywords:    cfg.MaxKeywords,
		AvailableTTL:   cfg.AvailableTTLSeconds,
		UnavailableTTL: cfg.UnavailableTTLSeconds,
	}), nil
}
