// Package analysis composes the matcher, scoring engine, recommender, and
// optional LLM role detection into the analysis variants exposed to callers.
// Every call is stateless end-to-end.
package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/jobdesc"
	"github.com/jonathan/resume-analyzer/internal/matching"
	"github.com/jonathan/resume-analyzer/internal/recommend"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/taxonomy"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// roleSuggestionConfidence gates role-specific suggestions: below this the
// detection is too uncertain to push role keywords at the user.
const roleSuggestionConfidence = 0.7

// ErrEmptyResume is returned when the request carries no analyzable text.
// This is the only hard failure; everything else degrades.
var ErrEmptyResume = fmt.Errorf("resume text is empty")

// UnknownRoleError is returned when the caller selects a role key the
// taxonomy does not contain.
type UnknownRoleError struct {
	Role string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q", e.Role)
}

// RoleDetector infers a job role analysis from resume text. Implemented by
// extraction.Client; stubbed in tests.
type RoleDetector interface {
	DetectJobRole(ctx context.Context, resumeText string) (*types.JobRoleAnalysis, error)
}

// Analyzer runs the analysis variants. The detector is optional: a nil
// detector disables the AI-augmented path's role detection and the analyzer
// degrades to the generic result.
type Analyzer struct {
	catalog     *taxonomy.Catalog
	recommender *recommend.Recommender
	detector    RoleDetector
}

// New creates an Analyzer over the catalog. detector may be nil.
func New(catalog *taxonomy.Catalog, detector RoleDetector) *Analyzer {
	return &Analyzer{
		catalog:     catalog,
		recommender: recommend.New(catalog),
		detector:    detector,
	}
}

// Recommender exposes the analyzer's category recommender for callers that
// serve category endpoints.
func (a *Analyzer) Recommender() *recommend.Recommender {
	return a.recommender
}

// Analyze runs the generic variant: the full default taxonomy keyword list
// with evenly weighted scoring.
func (a *Analyzer) Analyze(ctx context.Context, resumeText string) (*types.AnalysisResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResume
	}
	keywords := a.catalog.DefaultKeywords()
	return a.build(resumeText, keywords, scoring.ModeGeneric, nil), nil
}

// AnalyzeWithJobDescription runs the job-description-aware variant: the
// default taxonomy is unioned with pattern-extracted keywords from the job
// description, keyword relevance is weighted up, and a job-specific
// suggestion leads the list.
func (a *Analyzer) AnalyzeWithJobDescription(ctx context.Context, resumeText, jobDescription string) (*types.AnalysisResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResume
	}

	jobKeywords := jobdesc.Keywords(jobDescription)
	keywords := union(a.catalog.DefaultKeywords(), jobKeywords)
	result := a.build(resumeText, keywords, scoring.ModeJobAware, nil)

	missingJob := matching.Missing(resumeText, jobKeywords)
	if len(missingJob) > 0 {
		jobSuggestion := types.Suggestion{
			Type:        "job-match",
			Title:       "Mirror the job description",
			Description: "These keywords appear in the job description but not in your resume. Add the ones that honestly describe your experience.",
			Priority:    types.PriorityHigh,
			Keywords:    capKeywords(missingJob, 10),
		}
		result.Suggestions = append([]types.Suggestion{jobSuggestion}, result.Suggestions...)
	}
	return result, nil
}

// AnalyzeForRole runs the role-selected variant: all subgroups of the chosen
// taxonomy role flattened into one keyword list, with keyword match weighted
// hardest since an explicit selection is the strongest signal.
func (a *Analyzer) AnalyzeForRole(ctx context.Context, resumeText, roleID string) (*types.AnalysisResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResume
	}
	set, ok := a.catalog.KeywordSet(roleID)
	if !ok {
		return nil, &UnknownRoleError{Role: roleID}
	}
	return a.build(resumeText, set.Flatten(), scoring.ModeRoleAware, nil), nil
}

// AnalyzeWithRoleDetection runs the AI-augmented variant: generic scoring in
// parallel with LLM role detection. A failed detection never fails the
// analysis; the role section is simply absent from the result.
func (a *Analyzer) AnalyzeWithRoleDetection(ctx context.Context, resumeText string) (*types.AnalysisResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResume
	}

	var (
		result *types.AnalysisResult
		role   *types.JobRoleAnalysis
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result = a.build(resumeText, a.catalog.DefaultKeywords(), scoring.ModeGeneric, nil)
		return nil
	})
	g.Go(func() error {
		if a.detector == nil {
			return nil
		}
		detected, err := a.detector.DetectJobRole(gctx, resumeText)
		if err != nil {
			// Degrade: scoring still stands on its own.
			log.Printf("analysis: role detection failed, continuing without it: %v", err)
			return nil
		}
		role = detected
		return nil
	})
	// Neither goroutine returns an error; Wait is for synchronization.
	_ = g.Wait()

	if role != nil {
		role.RecommendedCategories = a.recommender.SmartCategories(role)
		result.JobRoleAnalysis = role
		if role.Confidence >= roleSuggestionConfidence {
			result.Suggestions = append(result.Suggestions, a.roleSuggestions(resumeText, role)...)
		}
	}
	return result, nil
}

// build assembles the common parts of every variant.
func (a *Analyzer) build(resumeText string, keywords []string, mode scoring.Mode, role *types.JobRoleAnalysis) *types.AnalysisResult {
	found := matching.Found(resumeText, keywords)
	missing := matching.Missing(resumeText, keywords)
	score := scoring.Compute(resumeText, len(found), len(keywords), mode)

	return &types.AnalysisResult{
		ID:              uuid.New().String(),
		Score:           score,
		FoundKeywords:   found,
		MissingKeywords: missing,
		Suggestions:     deriveSuggestions(resumeText, score, missing),
		Issues:          deriveIssues(resumeText),
		AnalyzedAt:      time.Now().UTC(),
		JobRoleAnalysis: role,
	}
}

// roleSuggestions builds suggestions from the detected role's taxonomy
// keywords the resume does not yet contain.
func (a *Analyzer) roleSuggestions(resumeText string, role *types.JobRoleAnalysis) []types.Suggestion {
	var out []types.Suggestion
	for _, categoryID := range role.RecommendedCategories {
		cat, ok := a.catalog.Category(categoryID)
		if !ok {
			continue
		}
		missing := matching.Missing(resumeText, cat.Keywords)
		if len(missing) == 0 {
			continue
		}
		out = append(out, types.Suggestion{
			Type:        "role-keywords",
			Title:       fmt.Sprintf("Strengthen your %s profile", cat.Name),
			Description: fmt.Sprintf("Your resume reads as %s. Consider adding these %s keywords where they apply.", role.PrimaryRole, cat.Name),
			Priority:    types.PriorityMedium,
			Keywords:    capKeywords(missing, 8),
		})
	}
	return out
}

func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, kw := range list {
			key := strings.ToLower(kw)
			if !seen[key] {
				seen[key] = true
				out = append(out, kw)
			}
		}
	}
	return out
}

func capKeywords(keywords []string, n int) []string {
	if len(keywords) <= n {
		return keywords
	}
	return keywords[:n]
}
