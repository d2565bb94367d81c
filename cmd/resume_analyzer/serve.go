package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/server"
	"github.com/jonathan/resume-analyzer/internal/taxonomy"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP server",
	Long:  "Start the HTTP API exposing analysis, role detection, keyword extraction, and category endpoints. LLM-backed endpoints are enabled when an API key is configured.",
	RunE:  runServe,
}

var (
	servePort       int
	serveAPIKey     string
	serveConfigPath string
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}

	ctx := context.Background()
	extractor, err := newExtractor(ctx, resolveAPIKey(serveAPIKey, cfg), cfg)
	if err != nil {
		return err
	}
	if extractor != nil {
		defer extractor.Close()
	}

	catalog := taxonomy.Default()
	var detector analysis.RoleDetector
	if extractor != nil {
		detector = extractor
	}

	srv, err := server.New(server.Config{
		Port:      port,
		Analyzer:  analysis.New(catalog, detector),
		Catalog:   catalog,
		Extractor: extractor,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
