package analysis

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// sectionMarker describes a resume section the format heuristic expects and
// the issue raised when it is absent.
type sectionMarker struct {
	name     string
	markers  []string
	severity string
}

var sectionMarkers = []sectionMarker{
	{name: "experience", markers: []string{"experience", "work history", "employment"}, severity: types.SeverityHigh},
	{name: "education", markers: []string{"education", "degree", "university", "college"}, severity: types.SeverityMedium},
	{name: "skills", markers: []string{"skills", "competencies", "proficiencies"}, severity: types.SeverityMedium},
	{name: "contact", markers: []string{"@", "email", "phone"}, severity: types.SeverityHigh},
}

// deriveSuggestions turns the score and missing keywords into actionable
// suggestions, highest priority first.
func deriveSuggestions(resumeText string, score types.ATSScore, missing []string) []types.Suggestion {
	var out []types.Suggestion

	if len(missing) > 0 {
		priority := types.PriorityLow
		switch {
		case score.KeywordMatch < 40:
			priority = types.PriorityHigh
		case score.KeywordMatch < 70:
			priority = types.PriorityMedium
		}
		out = append(out, types.Suggestion{
			Type:        "missing-keywords",
			Title:       "Add relevant keywords",
			Description: "ATS systems rank resumes by keyword presence. Work these terms into your experience bullets where they genuinely apply.",
			Priority:    priority,
			Keywords:    capKeywords(missing, 12),
		})
	}

	lower := strings.ToLower(resumeText)
	for _, section := range sectionMarkers {
		if !containsAnyMarker(lower, section.markers) {
			out = append(out, types.Suggestion{
				Type:        "missing-section",
				Title:       "Add a " + section.name + " section",
				Description: "No " + section.name + " section marker was found. ATS parsers rely on standard section headings.",
				Priority:    types.PriorityMedium,
			})
		}
	}

	if score.Readability < 70 {
		out = append(out, types.Suggestion{
			Type:        "readability",
			Title:       "Simplify your writing",
			Description: "Shorten long sentences and lead bullets with action verbs (managed, led, delivered).",
			Priority:    types.PriorityLow,
		})
	}

	return out
}

// deriveIssues flags structural problems independent of any keyword list.
func deriveIssues(resumeText string) []types.Issue {
	var out []types.Issue
	lower := strings.ToLower(resumeText)

	for _, section := range sectionMarkers {
		if !containsAnyMarker(lower, section.markers) {
			out = append(out, types.Issue{
				Type:        "missing-section",
				Description: "No " + section.name + " section detected",
				Severity:    section.severity,
				Location:    "document",
			})
		}
	}

	words := len(strings.Fields(resumeText))
	switch {
	case words > 0 && words < 200:
		out = append(out, types.Issue{
			Type:        "length",
			Description: "Resume is shorter than 200 words; ATS systems may rank it as incomplete",
			Severity:    types.SeverityMedium,
			Location:    "document",
		})
	case words > 800:
		out = append(out, types.Issue{
			Type:        "length",
			Description: "Resume exceeds 800 words; consider trimming to the most relevant experience",
			Severity:    types.SeverityLow,
			Location:    "document",
		})
	}

	return out
}

func containsAnyMarker(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
