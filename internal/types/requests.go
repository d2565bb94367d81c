package types

import (
	"github.com/go-playground/validator/v10"
)

// AnalyzeRequest is the request body for POST /analyze.
// Exactly one analysis variant is selected: plain, job-description-aware
// (JobDescription set), role-selected (Role set), or AI-augmented
// (DetectRole true).
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description,omitempty"`
	Role           string `json:"role,omitempty"`
	DetectRole     bool   `json:"detect_role,omitempty"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// DetectRoleRequest is the request body for POST /detect-role.
type DetectRoleRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
}

// Validate validates the DetectRoleRequest using the validator.
func (r *DetectRoleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ExtractKeywordsRequest is the request body for POST /extract-keywords.
type ExtractKeywordsRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
	ResumeText     string `json:"resume_text,omitempty"`
}

// Validate validates the ExtractKeywordsRequest using the validator.
func (r *ExtractKeywordsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
