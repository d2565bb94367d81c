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
	"github.com/jonathan/resume-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume for ATS compatibility",
	Long:  "Analyze a resume file (PDF, DOCX, or plain text) against the keyword taxonomy, a job description, or a selected role, and print the ATS compatibility report.",
	RunE:  runAnalyze,
}

var (
	analyzeResumeFile string
	analyzeJobFile    string
	analyzeJobURL     string
	analyzeRole       string
	analyzeDetectRole bool
	analyzeAPIKey     string
	analyzeConfigPath string
	analyzeOutFile    string
	analyzeUseBrowser bool
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumeFile, "in", "i", "", "Path to resume file (.pdf, .docx, or plain text), or - for stdin (required)")
	analyzeCmd.Flags().StringVar(&analyzeJobFile, "job", "", "Path to job description text file")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL of a job posting to analyze against")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Taxonomy role id to analyze against (see 'roles' output)")
	analyzeCmd.Flags().BoolVar(&analyzeDetectRole, "detect-role", false, "Use the LLM to infer the job role from the resume")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to JSON config file")
	analyzeCmd.Flags().StringVarP(&analyzeOutFile, "out", "o", "", "Write the result JSON to this file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use a headless browser for JavaScript-heavy job pages")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a human-readable report")
	_ = analyzeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if analyzeJobFile != "" && analyzeJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive")
	}
	if analyzeRole != "" && (analyzeJobFile != "" || analyzeJobURL != "") {
		return fmt.Errorf("--role cannot be combined with a job description")
	}

	cfg, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return err
	}

	var resumeText string
	if analyzeResumeFile == "-" {
		resumeText, err = ingestion.ExtractTextFromReader(os.Stdin, "txt")
	} else {
		resumeText, err = ingestion.ExtractText(analyzeResumeFile)
	}
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	ctx := context.Background()

	analyzer := analysis.New(taxonomy.Default(), nil)
	if analyzeDetectRole {
		extractor, err := newExtractor(ctx, resolveAPIKey(analyzeAPIKey, cfg), cfg)
		if err != nil {
			return err
		}
		if extractor == nil {
			return fmt.Errorf("--detect-role requires an API key (set GEMINI_API_KEY or use --api-key)")
		}
		analyzer = analysis.New(taxonomy.Default(), extractor)
	}

	result, err := runVariant(ctx, analyzer, resumeText, cfg.UseBrowser || analyzeUseBrowser)
	if err != nil {
		return err
	}

	if analyzeVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintAnalysisResult(result)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if analyzeOutFile != "" {
		return os.WriteFile(analyzeOutFile, jsonBytes, 0644)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

func runVariant(ctx context.Context, analyzer *analysis.Analyzer, resumeText string, useBrowser bool) (*types.AnalysisResult, error) {
	switch {
	case analyzeRole != "":
		return analyzer.AnalyzeForRole(ctx, resumeText, analyzeRole)
	case analyzeJobFile != "":
		jobBytes, rerr := os.ReadFile(analyzeJobFile)
		if rerr != nil {
			return nil, fmt.Errorf("failed to read job description: %w", rerr)
		}
		return analyzer.AnalyzeWithJobDescription(ctx, resumeText, ingestion.CleanText(string(jobBytes)))
	case analyzeJobURL != "":
		jobText, ierr := ingestion.IngestJobURL(ctx, analyzeJobURL, useBrowser, analyzeVerbose)
		if ierr != nil {
			return nil, fmt.Errorf("failed to ingest job posting: %w", ierr)
		}
		return analyzer.AnalyzeWithJobDescription(ctx, resumeText, jobText)
	case analyzeDetectRole:
		return analyzer.AnalyzeWithRoleDetection(ctx, resumeText)
	default:
		return analyzer.Analyze(ctx, resumeText)
	}
}
