// Package scoring computes the composite ATS compatibility score from
// keyword-match, formatting, and readability sub-scores.
package scoring

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Mode selects how the three sub-scores are combined. The weights differ
// deliberately: keyword relevance counts for more when the keyword list is
// evidence-derived (job-aware) or explicitly chosen (role-aware) than when it
// is the generic default taxonomy.
type Mode string

// Composition modes.
const (
	ModeGeneric   Mode = "generic"    // simple mean
	ModeJobAware  Mode = "job-aware"  // 0.5 keyword / 0.3 format / 0.2 readability
	ModeRoleAware Mode = "role-aware" // 0.6 keyword / 0.2 format / 0.2 readability
)

const (
	minGoodWordCount = 200
	maxGoodWordCount = 800

	maxAvgSentenceLength = 25
	longWordLength       = 10
	longWordRatioLimit   = 0.10
)

var (
	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	// Keyword markers for the additive format heuristic.
	experienceMarkers = []string{"experience", "work history", "employment"}
	educationMarkers  = []string{"education", "degree", "university", "college"}
	skillsMarkers     = []string{"skills", "competencies", "proficiencies"}
	contactMarkers    = []string{"@", "email", "phone"}
	bulletMarkers     = []string{"•", "\n- ", "\n* ", "\n– "}

	actionVerbs = []string{
		"managed", "led", "developed", "implemented", "designed", "created",
		"improved", "achieved", "built", "launched", "delivered", "optimized",
		"coordinated", "increased", "reduced",
	}
)

// Compute builds the full ATSScore for a resume text given the number of
// matched keywords out of totalKeywords. Empty input never panics; divisions
// by zero floor the affected sub-score at 0.
func Compute(text string, foundCount, totalKeywords int, mode Mode) types.ATSScore {
	keyword := KeywordScore(foundCount, totalKeywords)
	format := FormatScore(text)
	readability := ReadabilityScore(text)
	overall := combine(keyword, format, readability, mode)
	grade, description := Grade(overall)

	return types.ATSScore{
		Overall:      overall,
		KeywordMatch: keyword,
		Formatting:   format,
		Readability:  readability,
		Grade:        grade,
		Description:  description,
	}
}

// KeywordScore is the matched-keyword ratio scaled to [0,100]. A zero-length
// keyword list scores 0.
func KeywordScore(foundCount, totalKeywords int) int {
	if totalKeywords <= 0 {
		return 0
	}
	score := 100 * foundCount / totalKeywords
	if score > 100 {
		return 100
	}
	return score
}

// FormatScore is an additive structural heuristic out of 100: section
// markers, contact details, a four-digit year, bullet points, and a word
// count within the sweet spot each contribute.
func FormatScore(text string) int {
	lower := strings.ToLower(text)
	score := 0

	if containsAny(lower, experienceMarkers) {
		score += 20
	}
	if containsAny(lower, educationMarkers) {
		score += 15
	}
	if containsAny(lower, skillsMarkers) {
		score += 15
	}
	if containsAny(lower, contactMarkers) {
		score += 10
	}
	if yearPattern.MatchString(text) {
		score += 10
	}
	if containsAny(text, bulletMarkers) || strings.HasPrefix(strings.TrimSpace(text), "- ") {
		score += 10
	}
	words := len(strings.Fields(text))
	if words >= minGoodWordCount && words <= maxGoodWordCount {
		score += 20
	}

	if score > 100 {
		return 100
	}
	return score
}

// ReadabilityScore starts at 100 and penalizes run-on sentences and dense
// vocabulary; the presence of action verbs earns a small bonus. Clamped to
// [0,100].
func ReadabilityScore(text string) int {
	score := 100
	words := strings.Fields(text)
	sentences := countSentences(text)

	if sentences > 0 && len(words)/sentences > maxAvgSentenceLength {
		score -= 20
	}

	if len(words) > 0 {
		long := 0
		for _, w := range words {
			if len(strings.Trim(w, ".,;:!?()")) > longWordLength {
				long++
			}
		}
		if float64(long)/float64(len(words)) > longWordRatioLimit {
			score -= 15
		}
	}

	lower := strings.ToLower(text)
	if containsAny(lower, actionVerbs) {
		score += 10
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// Grade maps an overall score to its letter grade and fixed description.
// The thresholds partition [0,100]: every score maps to exactly one grade.
func Grade(overall int) (string, string) {
	switch {
	case overall >= 90:
		return "A+", "Excellent! Your resume is highly optimized for ATS systems."
	case overall >= 80:
		return "A", "Great job! Your resume is well-optimized with minor room for improvement."
	case overall >= 70:
		return "B", "Good foundation. A few targeted changes will improve your ATS compatibility."
	case overall >= 60:
		return "C", "Your resume needs attention in several areas to pass ATS screening reliably."
	case overall >= 50:
		return "D", "Your resume is likely to struggle with ATS systems. Significant changes recommended."
	default:
		return "F", "Your resume needs a substantial rework to be ATS-compatible."
	}
}

func combine(keyword, format, readability int, mode Mode) int {
	switch mode {
	case ModeJobAware:
		return (keyword*50 + format*30 + readability*20) / 100
	case ModeRoleAware:
		return (keyword*60 + format*20 + readability*20) / 100
	default:
		return (keyword + format + readability) / 3
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func countSentences(text string) int {
	n := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			n++
		}
	}
	return n
}
