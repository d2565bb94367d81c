package parsing

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// trailingCommaPattern matches a comma directly before a closing brace or
// bracket, which models emit routinely and encoding/json rejects.
var trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)

// ParseExtraction converts raw model output into an ExtractionResult.
// The ladder: trim and strip code fences, slice to the outermost braces,
// decode tolerantly with default-filling, and fall back to a canned generic
// result when nothing parseable remains. It never returns Success=false;
// call failures are the caller's to report.
func ParseExtraction(raw string) types.ExtractionResult {
	payload, ok := extractJSONPayload(raw)
	if !ok {
		return FallbackExtraction()
	}

	var decoded extractionPayload
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return FallbackExtraction()
	}

	result := decoded.toResult()
	if len(result.SuggestedKeywords) == 0 && len(result.RequiredSkills) == 0 &&
		len(result.TechnicalSkills) == 0 && len(result.SoftSkills) == 0 {
		// Well-formed JSON with nothing usable in it gets the same treatment
		// as garbage: the consumer always needs some keyword list.
		return FallbackExtraction()
	}
	return result
}

// ParseRoleAnalysis converts raw model output into a JobRoleAnalysis,
// falling back to a low-confidence generic analysis when the output is
// unusable.
func ParseRoleAnalysis(raw string) types.JobRoleAnalysis {
	payload, ok := extractJSONPayload(raw)
	if !ok {
		return FallbackRoleAnalysis()
	}

	var decoded rolePayload
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return FallbackRoleAnalysis()
	}
	if strings.TrimSpace(decoded.PrimaryRole) == "" {
		return FallbackRoleAnalysis()
	}
	return decoded.toAnalysis()
}

// StripCodeFences removes a markdown code fence wrapping the model output.
// Models wrap JSON in ```json blocks even when instructed not to.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		// Drop a language tag such as "json" on the opening fence line.
		tag := strings.TrimSpace(body[:nl])
		if len(tag) < 20 && !strings.ContainsAny(tag, " {") {
			body = body[nl+1:]
		}
	} else {
		body = strings.TrimPrefix(body, "json")
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// extractJSONPayload runs the pre-decode stages of the ladder: fence strip,
// bracket slice, trailing-comma cleanup. ok is false when no braced span
// exists, which short-circuits straight to the fallback.
func extractJSONPayload(raw string) (string, bool) {
	text := StripCodeFences(raw)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < 0 || end <= start {
		return "", false
	}
	text = text[start : end+1]

	text = trailingCommaPattern.ReplaceAllString(text, "$1")
	return text, true
}

// FallbackExtraction is the canned result used when the model replied but
// the payload is unusable. A generic, broadly-applicable keyword list is
// more useful to the consuming workflow than a hard failure.
func FallbackExtraction() types.ExtractionResult {
	return types.ExtractionResult{
		Success: true,
		SuggestedKeywords: []string{
			"communication", "leadership", "problem solving", "teamwork",
			"project management", "time management", "adaptability",
			"attention to detail",
		},
		RequiredSkills:         []string{},
		TechnicalSkills:        []string{},
		SoftSkills:             []string{"communication", "leadership", "teamwork"},
		ExperienceRequirements: []string{},
		Industries:             []string{},
		JobTitles:              []string{},
		Certifications:         []string{},
		RelevanceScore:         0.5,
		KeywordFrequency:       map[string]int{},
	}
}

// FallbackRoleAnalysis is the canned role analysis for unusable role
// detection output. Confidence is low so the recommender appends its
// popularity-ranked safety net.
func FallbackRoleAnalysis() types.JobRoleAnalysis {
	return types.JobRoleAnalysis{
		PrimaryRole:           "General Professional",
		SecondaryRoles:        []string{},
		Confidence:            0.3,
		RecommendedCategories: []string{},
		Reasoning:             "Role could not be determined from the model response; using generic defaults.",
	}
}

// rolePayload mirrors JobRoleAnalysis with the camelCase field names the
// model is instructed to emit. The public type uses snake_case wire tags, and
// encoding/json's case folding does not bridge the underscore difference.
type rolePayload struct {
	PrimaryRole           string                  `json:"primaryRole"`
	SecondaryRoles        []string                `json:"secondaryRoles"`
	Industry              string                  `json:"industry"`
	SeniorityLevel        string                  `json:"seniorityLevel"`
	Confidence            float64                 `json:"confidence"`
	RoleConfidenceScores  []roleConfidencePayload `json:"roleConfidenceScores"`
	RecommendedCategories []string                `json:"recommendedCategories"`
	Reasoning             string                  `json:"reasoning"`
}

type roleConfidencePayload struct {
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

func (p *rolePayload) toAnalysis() types.JobRoleAnalysis {
	scores := make([]types.RoleConfidence, 0, len(p.RoleConfidenceScores))
	for _, s := range p.RoleConfidenceScores {
		scores = append(scores, types.RoleConfidence{
			Role:       s.Role,
			Confidence: clamp01(s.Confidence),
			Reasoning:  s.Reasoning,
		})
	}
	return types.JobRoleAnalysis{
		PrimaryRole:           strings.TrimSpace(p.PrimaryRole),
		SecondaryRoles:        orEmpty(p.SecondaryRoles),
		Industry:              p.Industry,
		SeniorityLevel:        p.SeniorityLevel,
		Confidence:            clamp01(p.Confidence),
		RoleConfidenceScores:  scores,
		RecommendedCategories: orEmpty(p.RecommendedCategories),
		Reasoning:             p.Reasoning,
	}
}

// extractionPayload mirrors ExtractionResult with every field optional.
// encoding/json matches field names case-insensitively, which covers the
// model's casing drift; default-filling happens in toResult.
type extractionPayload struct {
	SuggestedKeywords      []string       `json:"suggestedKeywords"`
	RequiredSkills         []string       `json:"requiredSkills"`
	TechnicalSkills        []string       `json:"technicalSkills"`
	SoftSkills             []string       `json:"softSkills"`
	ExperienceRequirements []string       `json:"experienceRequirements"`
	Industries             []string       `json:"industries"`
	JobTitles              []string       `json:"jobTitles"`
	Certifications         []string       `json:"certifications"`
	JobLevel               string         `json:"jobLevel"`
	JobType                string         `json:"jobType"`
	RelevanceScore         float64        `json:"relevanceScore"`
	KeywordFrequency       map[string]int `json:"keywordFrequency"`
}

func (p *extractionPayload) toResult() types.ExtractionResult {
	return types.ExtractionResult{
		Success:                true,
		SuggestedKeywords:      orEmpty(p.SuggestedKeywords),
		RequiredSkills:         orEmpty(p.RequiredSkills),
		TechnicalSkills:        orEmpty(p.TechnicalSkills),
		SoftSkills:             orEmpty(p.SoftSkills),
		ExperienceRequirements: orEmpty(p.ExperienceRequirements),
		Industries:             orEmpty(p.Industries),
		JobTitles:              orEmpty(p.JobTitles),
		Certifications:         orEmpty(p.Certifications),
		JobLevel:               strings.TrimSpace(p.JobLevel),
		JobType:                strings.TrimSpace(p.JobType),
		RelevanceScore:         clamp01(p.RelevanceScore),
		KeywordFrequency:       orEmptyMap(p.KeywordFrequency),
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyMap(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
