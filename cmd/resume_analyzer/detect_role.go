package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/taxonomy"
)

var detectRoleCmd = &cobra.Command{
	Use:   "detect-role",
	Short: "Infer the job role a resume targets",
	Long:  "Send the resume to the LLM to infer the primary and secondary roles it targets, along with recommended keyword categories.",
	RunE:  runDetectRole,
}

var (
	detectResumeFile string
	detectAPIKey     string
	detectConfigPath string
	detectVerbose    bool
)

func init() {
	detectRoleCmd.Flags().StringVarP(&detectResumeFile, "in", "i", "", "Path to resume file (.pdf, .docx, or plain text) (required)")
	detectRoleCmd.Flags().StringVar(&detectAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	detectRoleCmd.Flags().StringVar(&detectConfigPath, "config", "", "Path to JSON config file")
	detectRoleCmd.Flags().BoolVarP(&detectVerbose, "verbose", "v", false, "Print a human-readable report")
	_ = detectRoleCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(detectRoleCmd)
}

func runDetectRole(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(detectConfigPath)
	if err != nil {
		return err
	}

	resumeText, err := ingestion.ExtractText(detectResumeFile)
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	ctx := context.Background()
	extractor, err := newExtractor(ctx, resolveAPIKey(detectAPIKey, cfg), cfg)
	if err != nil {
		return err
	}
	if extractor == nil {
		return fmt.Errorf("detect-role requires an API key (set GEMINI_API_KEY or use --api-key)")
	}
	defer extractor.Close()

	role, err := extractor.DetectJobRole(ctx, resumeText)
	if err != nil {
		return fmt.Errorf("role detection failed: %w", err)
	}

	recommender := analysis.New(taxonomy.Default(), nil).Recommender()
	role.RecommendedCategories = recommender.SmartCategories(role)

	if detectVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintRoleAnalysis(role)
	}

	jsonBytes, err := json.MarshalIndent(role, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
