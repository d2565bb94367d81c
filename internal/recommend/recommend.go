// Package recommend maps free-text role names and AI-derived role analyses
// to job category ids from the taxonomy.
package recommend

import (
	"log"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/taxonomy"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// confidenceFloor is the role-detection confidence below which
// popularity-ranked categories are appended as a safety net.
const confidenceFloor = 0.7

const (
	smartFallbackCount    = 2
	roleNameFallbackCount = 3
)

// categoryTriggers maps each category id to the substrings that select it
// when found in a lower-cased role name. Data, not code: extending the
// taxonomy means editing this table only. A role may trigger any number of
// categories.
var categoryTriggers = map[string][]string{
	"software-development": {"software", "developer", "engineer", "programmer", "full stack", "backend", "frontend", "web developer", "devops", "sre"},
	"data-science":         {"data", "analyst", "scientist", "machine learning", "analytics", "statistician", "bi"},
	"marketing":            {"marketing", "seo", "content", "brand", "growth", "social media"},
	"sales":                {"sales", "account executive", "business development", "account manager"},
	"design":               {"design", "ux", "ui", "graphic", "visual", "creative director"},
	"project-management":   {"project manager", "program manager", "product manager", "scrum master", "delivery manager"},
	"finance":              {"finance", "financial", "accountant", "accounting", "auditor", "controller", "bookkeeper"},
	"healthcare":           {"nurse", "medical", "healthcare", "clinical", "physician", "therapist", "caregiver"},
	"qa-testing":           {"qa", "quality assurance", "test", "tester", "sdet", "automation"},
}

// triggerMatches reports whether the lower-cased role contains the trigger.
// Short triggers like "bi", "qa", and "ux" only count as standalone words,
// otherwise they fire inside unrelated terms ("mobile", "luxury").
func triggerMatches(role, trigger string) bool {
	if len(trigger) > 3 {
		return strings.Contains(role, trigger)
	}
	for _, word := range strings.FieldsFunc(role, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if word == trigger {
			return true
		}
	}
	return false
}

// Recommender resolves role names to category recommendations against a
// loaded catalog.
type Recommender struct {
	catalog *taxonomy.Catalog
}

// New creates a Recommender over the given catalog.
func New(catalog *taxonomy.Catalog) *Recommender {
	return &Recommender{catalog: catalog}
}

// CategoryIDs returns the category ids triggered by the primary role and any
// secondary roles, deduplicated and ordered by descending popularity.
// Matching is by case-insensitive substring against the trigger table.
func (r *Recommender) CategoryIDs(primaryRole string, secondaryRoles []string) []string {
	ids := make(map[string]bool)
	roles := append([]string{primaryRole}, secondaryRoles...)
	for _, role := range roles {
		lower := strings.ToLower(strings.TrimSpace(role))
		if lower == "" {
			continue
		}
		for categoryID, triggers := range categoryTriggers {
			for _, trigger := range triggers {
				if triggerMatches(lower, trigger) {
					ids[categoryID] = true
					break
				}
			}
		}
	}
	return r.sortByPopularity(ids)
}

// ForRoleName resolves a single role string to recommended category ids.
// A bare role string carries no confidence signal, so the top popular
// categories are always appended as a safety net.
func (r *Recommender) ForRoleName(role string) []string {
	ids := r.CategoryIDs(role, nil)
	return r.appendPopular(ids, roleNameFallbackCount)
}

// SmartCategories blends an AI role analysis into category recommendations.
// The model's own recommended categories are preferred when present;
// otherwise the trigger table decides. Low-confidence detections
// (< 0.7) get the top popular categories appended.
func (r *Recommender) SmartCategories(analysis *types.JobRoleAnalysis) []string {
	if analysis == nil {
		return r.appendPopular(nil, roleNameFallbackCount)
	}

	var ids []string
	if len(analysis.RecommendedCategories) > 0 {
		for _, id := range analysis.RecommendedCategories {
			if r.catalog.HasCategory(id) {
				ids = append(ids, id)
			} else {
				// Model output is untrusted; unknown ids are dropped here so
				// they never reach consumers that treat them as invariants.
				log.Printf("recommend: dropping unknown category id %q from model output", id)
			}
		}
	}
	if len(ids) == 0 {
		ids = r.CategoryIDs(analysis.PrimaryRole, analysis.SecondaryRoles)
	}

	if analysis.Confidence < confidenceFloor {
		ids = r.appendPopular(ids, smartFallbackCount)
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return r.sortByPopularity(set)
}

// SearchCategories performs a case-insensitive substring search against
// category name, description, tags, and keywords, returning matches ordered
// by descending popularity.
func (r *Recommender) SearchCategories(term string) []taxonomy.JobCategory {
	needle := strings.ToLower(strings.TrimSpace(term))
	matches := []taxonomy.JobCategory{}
	if needle == "" {
		return matches
	}
	for _, cat := range r.catalog.Categories() {
		if categoryMatches(cat, needle) {
			matches = append(matches, cat)
		}
	}
	// Categories() is already popularity-ordered.
	return matches
}

func categoryMatches(cat taxonomy.JobCategory, needle string) bool {
	if strings.Contains(strings.ToLower(cat.Name), needle) ||
		strings.Contains(strings.ToLower(cat.Description), needle) {
		return true
	}
	for _, tag := range cat.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	for _, kw := range cat.Keywords {
		if strings.Contains(strings.ToLower(kw), needle) {
			return true
		}
	}
	return false
}

// appendPopular adds the top-n categories by popularity not already present.
func (r *Recommender) appendPopular(ids []string, n int) []string {
	present := make(map[string]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}
	added := 0
	for _, cat := range r.catalog.Categories() {
		if added >= n {
			break
		}
		if !present[cat.ID] {
			ids = append(ids, cat.ID)
			present[cat.ID] = true
			added++
		}
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return r.sortByPopularity(set)
}

func (r *Recommender) sortByPopularity(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := r.catalog.Category(out[i])
		b, _ := r.catalog.Category(out[j])
		if a.PopularityScore != b.PopularityScore {
			return a.PopularityScore > b.PopularityScore
		}
		return out[i] < out[j]
	})
	return out
}
