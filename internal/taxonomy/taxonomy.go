// Package taxonomy holds the static catalog of job categories and keyword
// sets the analyzer matches resume text against. The catalog is loaded once
// from embedded JSON data, validated against embedded schemas, and immutable
// afterwards.
package taxonomy

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed data/*.json
var dataFiles embed.FS

// Subgroups partitions a keyword set by keyword kind.
type Subgroups struct {
	Primary   []string `json:"primary"`
	Technical []string `json:"technical"`
	Process   []string `json:"process"`
	Tools     []string `json:"tools"`
}

// KeywordSet is a named group of keywords for one job role.
type KeywordSet struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	Subgroups   Subgroups `json:"subgroups"`
}

// Flatten returns all subgroup keywords in a single list, deduplicated,
// preserving subgroup order (primary, technical, process, tools).
func (k *KeywordSet) Flatten() []string {
	out := make([]string, 0, len(k.Subgroups.Primary)+len(k.Subgroups.Technical)+len(k.Subgroups.Process)+len(k.Subgroups.Tools))
	seen := make(map[string]bool)
	for _, group := range [][]string{k.Subgroups.Primary, k.Subgroups.Technical, k.Subgroups.Process, k.Subgroups.Tools} {
		for _, kw := range group {
			key := strings.ToLower(kw)
			if !seen[key] {
				seen[key] = true
				out = append(out, kw)
			}
		}
	}
	return out
}

// JobCategory is a single entry in the category catalog.
type JobCategory struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Icon            string   `json:"icon"`
	ColorHint       string   `json:"color_hint"`
	PopularityScore int      `json:"popularity_score"`
	Tags            []string `json:"tags"`
	Keywords        []string `json:"keywords"`
}

// Catalog is the loaded, immutable taxonomy.
type Catalog struct {
	categories  []JobCategory
	categoryIdx map[string]int
	keywordSets []KeywordSet
	setIdx      map[string]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the package-level catalog loaded from the embedded data.
// Invalid embedded data is a programmer error and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		catalog, err := Load()
		if err != nil {
			panic(fmt.Sprintf("taxonomy: embedded data is invalid: %v", err))
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// Load reads and validates the embedded taxonomy data.
func Load() (*Catalog, error) {
	categoriesJSON, err := dataFiles.ReadFile("data/categories.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read categories data: %w", err)
	}
	setsJSON, err := dataFiles.ReadFile("data/keyword_sets.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword sets data: %w", err)
	}

	if err := validateData(categoriesJSON, setsJSON); err != nil {
		return nil, err
	}

	var categories []JobCategory
	if err := json.Unmarshal(categoriesJSON, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse categories data: %w", err)
	}
	var sets []KeywordSet
	if err := json.Unmarshal(setsJSON, &sets); err != nil {
		return nil, fmt.Errorf("failed to parse keyword sets data: %w", err)
	}

	catalog := &Catalog{
		categories:  categories,
		categoryIdx: make(map[string]int, len(categories)),
		keywordSets: sets,
		setIdx:      make(map[string]int, len(sets)),
	}

	for i, cat := range categories {
		if _, dup := catalog.categoryIdx[cat.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q", cat.ID)
		}
		if len(cat.Keywords) == 0 {
			return nil, fmt.Errorf("category %q has no keywords", cat.ID)
		}
		catalog.categoryIdx[cat.ID] = i
	}
	for i, set := range sets {
		if _, dup := catalog.setIdx[set.ID]; dup {
			return nil, fmt.Errorf("duplicate keyword set id %q", set.ID)
		}
		catalog.setIdx[set.ID] = i
	}

	return catalog, nil
}

// Categories returns all categories ordered by descending popularity.
func (c *Catalog) Categories() []JobCategory {
	out := make([]JobCategory, len(c.categories))
	copy(out, c.categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PopularityScore > out[j].PopularityScore
	})
	return out
}

// Category looks up a category by id. The second return is false when the id
// is unknown.
func (c *Catalog) Category(id string) (JobCategory, bool) {
	i, ok := c.categoryIdx[id]
	if !ok {
		return JobCategory{}, false
	}
	return c.categories[i], true
}

// HasCategory reports whether the catalog contains a category with the id.
func (c *Catalog) HasCategory(id string) bool {
	_, ok := c.categoryIdx[id]
	return ok
}

// KeywordSets returns all keyword sets in catalog order.
func (c *Catalog) KeywordSets() []KeywordSet {
	out := make([]KeywordSet, len(c.keywordSets))
	copy(out, c.keywordSets)
	return out
}

// KeywordSet looks up a keyword set by role id.
func (c *Catalog) KeywordSet(id string) (KeywordSet, bool) {
	i, ok := c.setIdx[id]
	if !ok {
		return KeywordSet{}, false
	}
	return c.keywordSets[i], true
}

// DefaultKeywords flattens every keyword set into one deduplicated list.
// This is the keyword list used by the generic analysis variant.
func (c *Catalog) DefaultKeywords() []string {
	var out []string
	seen := make(map[string]bool)
	for _, set := range c.keywordSets {
		for _, kw := range set.Flatten() {
			key := strings.ToLower(kw)
			if !seen[key] {
				seen[key] = true
				out = append(out, kw)
			}
		}
	}
	return out
}
