// Package extraction is the client for LLM-backed keyword extraction and
// job-role detection. It builds prompts, issues a single bounded request per
// logical operation (no retries; the upstream is rate-limited), and
// normalizes the unpredictable text output through the parsing ladder.
package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultMaxKeywords caps the suggested-keyword list returned to callers.
const DefaultMaxKeywords = 25

const promptFile = "extraction.json"

// Client wraps the text-generation service for the analyzer's two tasks:
// keyword extraction from job descriptions and role inference from resumes.
type Client struct {
	llm          llm.Client
	availability *llm.AvailabilityCache
	maxKeywords  int
}

// Options configures a Client. Zero values use defaults.
type Options struct {
	MaxKeywords    int
	AvailableTTL   int // seconds; 0 means default
	UnavailableTTL int // seconds; 0 means default
}

// New creates a Client around an LLM client. The availability cache is owned
// here so every consumer shares one probe state.
func New(client llm.Client, opts Options) *Client {
	maxKeywords := opts.MaxKeywords
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}
	return &Client{
		llm:          client,
		availability: newAvailability(client, opts),
		maxKeywords:  maxKeywords,
	}
}

func newAvailability(client llm.Client, opts Options) *llm.AvailabilityCache {
	probe := func(ctx context.Context) error { return client.Probe(ctx) }
	return llm.NewAvailabilityCache(probe,
		secondsOrZero(opts.AvailableTTL), secondsOrZero(opts.UnavailableTTL))
}

// IsAvailable reports whether the external service is reachable, served from
// the TTL cache whenever possible.
func (c *Client) IsAvailable(ctx context.Context) bool {
	return c.availability.IsAvailable(ctx)
}

// Close releases the underlying LLM client.
func (c *Client) Close() error {
	return c.llm.Close()
}

// ExtractKeywords extracts ATS keywords from a job description. A failed
// call yields Success=false with an error message; a successful call with an
// unusable payload yields the canned generic result instead.
func (c *Client) ExtractKeywords(ctx context.Context, jobDescription string) types.ExtractionResult {
	prompt := prompts.Format(prompts.MustGet(promptFile, "extract-keywords"), map[string]string{
		"JobText": jobDescription,
	})
	return c.extract(ctx, prompt)
}

// ExtractKeywordsForResume extracts keywords from a job description
// prioritized against the candidate's resume.
func (c *Client) ExtractKeywordsForResume(ctx context.Context, jobDescription, resumeText string) types.ExtractionResult {
	prompt := prompts.Format(prompts.MustGet(promptFile, "extract-keywords-personalized"), map[string]string{
		"JobText":    jobDescription,
		"ResumeText": resumeText,
	})
	return c.extract(ctx, prompt)
}

func (c *Client) extract(ctx context.Context, prompt string) types.ExtractionResult {
	raw, err := c.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		// Call failure, not content failure: report it instead of papering
		// over with the fallback.
		return types.ExtractionResult{
			Success:      false,
			ErrorMessage: fmt.Sprintf("keyword extraction request failed: %v", err),
		}
	}

	result := parsing.ParseExtraction(raw)
	if len(result.SuggestedKeywords) > c.maxKeywords {
		result.SuggestedKeywords = result.SuggestedKeywords[:c.maxKeywords]
	}
	return result
}

// DetectJobRole infers the candidate's likely role from resume text. The
// returned error is non-nil only for call failures; malformed content
// resolves to the low-confidence fallback analysis.
func (c *Client) DetectJobRole(ctx context.Context, resumeText string) (*types.JobRoleAnalysis, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "detect-role"), map[string]string{
		"ResumeText": resumeText,
	})

	raw, err := c.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, &parsing.APICallError{
			Message: "role detection request failed",
			Cause:   err,
		}
	}

	analysis := parsing.ParseRoleAnalysis(raw)
	return &analysis, nil
}

func secondsOrZero(s int) time.Duration {
	if s > 0 {
		return time.Duration(s) * time.Second
	}
	return 0
}
