// Package types defines the shared data structures exchanged between the
// analysis engine, the LLM extraction layer, and the API surface.
package types

import "time"

// Suggestion priority levels.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Issue severity levels.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// ATSScore is the composite compatibility score for a resume.
// Overall is a deterministic combination of the three sub-scores; Grade is a
// step function of Overall.
type ATSScore struct {
	Overall      int    `json:"overall"`
	KeywordMatch int    `json:"keyword_match"`
	Formatting   int    `json:"formatting"`
	Readability  int    `json:"readability"`
	Grade        string `json:"grade"`
	Description  string `json:"description"`
}

// Suggestion is an actionable improvement recommendation.
type Suggestion struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Issue flags a structural problem detected in the resume text.
type Issue struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Location    string `json:"location,omitempty"`
}

// RoleConfidence is a single role candidate with its confidence and the
// model's stated reasoning.
type RoleConfidence struct {
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// JobRoleAnalysis is the inferred job role profile for a resume. It is built
// once from model output and never mutated afterwards.
type JobRoleAnalysis struct {
	PrimaryRole           string           `json:"primary_role"`
	SecondaryRoles        []string         `json:"secondary_roles"`
	Industry              string           `json:"industry,omitempty"`
	SeniorityLevel        string           `json:"seniority_level,omitempty"`
	Confidence            float64          `json:"confidence"`
	RoleConfidenceScores  []RoleConfidence `json:"role_confidence_scores,omitempty"`
	RecommendedCategories []string         `json:"recommended_categories,omitempty"`
	Reasoning             string           `json:"reasoning,omitempty"`
}

// AnalysisResult aggregates everything produced for a single analysis
// request. Results are created fresh per request and never cached.
type AnalysisResult struct {
	ID              string           `json:"id"`
	Score           ATSScore         `json:"score"`
	FoundKeywords   []string         `json:"found_keywords"`
	MissingKeywords []string         `json:"missing_keywords"`
	Suggestions     []Suggestion     `json:"suggestions"`
	Issues          []Issue          `json:"issues"`
	AnalyzedAt      time.Time        `json:"analyzed_at"`
	JobRoleAnalysis *JobRoleAnalysis `json:"job_role_analysis,omitempty"`
}

// ExtractionResult holds keywords and metadata extracted from a job
// description by the LLM. All collections default to empty when the model
// omits them.
type ExtractionResult struct {
	Success                bool           `json:"success"`
	SuggestedKeywords      []string       `json:"suggested_keywords"`
	RequiredSkills         []string       `json:"required_skills"`
	TechnicalSkills        []string       `json:"technical_skills"`
	SoftSkills             []string       `json:"soft_skills"`
	ExperienceRequirements []string       `json:"experience_requirements"`
	Industries             []string       `json:"industries"`
	JobTitles              []string       `json:"job_titles"`
	Certifications         []string       `json:"certifications"`
	JobLevel               string         `json:"job_level,omitempty"`
	JobType                string         `json:"job_type,omitempty"`
	RelevanceScore         float64        `json:"relevance_score,omitempty"`
	KeywordFrequency       map[string]int `json:"keyword_frequency,omitempty"`
	ErrorMessage           string         `json:"error_message,omitempty"`
}
