package taxonomy

import (
	_ "embed"
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/schemas"
)

//go:embed data/categories_schema.json
var categoriesSchema []byte

//go:embed data/keyword_sets_schema.json
var keywordSetsSchema []byte

// validateData checks the embedded data files against their JSON schemas
// before decoding. Structural problems in the shipped data should fail fast
// at load time, not surface as odd analysis results later.
func validateData(categoriesJSON, setsJSON []byte) error {
	if err := schemas.ValidateBytes("categories", categoriesSchema, categoriesJSON); err != nil {
		return fmt.Errorf("categories data: %w", err)
	}
	if err := schemas.ValidateBytes("keyword_sets", keywordSetsSchema, setsJSON); err != nil {
		return fmt.Errorf("keyword sets data: %w", err)
	}
	return nil
}
