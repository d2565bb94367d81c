package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// RolesResponse lists the selectable taxonomy roles.
type RolesResponse struct {
	Roles []RoleSummary `json:"roles"`
}

// RoleSummary is one selectable role.
type RoleSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

// HealthResponse reports server and model availability.
type HealthResponse struct {
	Status       string `json:"status"`
	LLMAvailable bool   `json:"llm_available"`
}

// handleAnalyze runs the analysis variant selected by the request body.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	ctx := r.Context()
	var (
		result *types.AnalysisResult
		err    error
	)
	switch {
	case req.Role != "":
		result, err = s.analyzer.AnalyzeForRole(ctx, req.ResumeText, req.Role)
	case req.JobDescription != "":
		result, err = s.analyzer.AnalyzeWithJobDescription(ctx, req.ResumeText, req.JobDescription)
	case req.DetectRole:
		result, err = s.analyzer.AnalyzeWithRoleDetection(ctx, req.ResumeText)
	default:
		result, err = s.analyzer.Analyze(ctx, req.ResumeText)
	}

	if err != nil {
		var unknownRole *analysis.UnknownRoleError
		switch {
		case errors.Is(err, analysis.ErrEmptyResume):
			s.errorResponse(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &unknownRole):
			s.errorResponse(w, http.StatusNotFound, err.Error())
		default:
			s.errorResponse(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleDetectRole infers the job role from resume text.
func (s *Server) handleDetectRole(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Role detection is not configured")
		return
	}

	var req types.DetectRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	role, err := s.extractor.DetectJobRole(r.Context(), req.ResumeText)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Role detection failed: "+err.Error())
		return
	}
	role.RecommendedCategories = s.analyzer.Recommender().SmartCategories(role)

	s.jsonResponse(w, http.StatusOK, role)
}

// handleExtractKeywords extracts ATS keywords from a job description,
// optionally personalized against a resume.
func (s *Server) handleExtractKeywords(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Keyword extraction is not configured")
		return
	}

	var req types.ExtractKeywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	var result types.ExtractionResult
	if req.ResumeText != "" {
		result = s.extractor.ExtractKeywordsForResume(r.Context(), req.JobDescription, req.ResumeText)
	} else {
		result = s.extractor.ExtractKeywords(r.Context(), req.JobDescription)
	}

	if !result.Success {
		// The call itself failed; the parser's fallback never produces this.
		s.jsonResponse(w, http.StatusBadGateway, result)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleListCategories returns all job categories, popularity-ordered.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.catalog.Categories())
}

// handleSearchCategories searches categories by the q query parameter.
func (s *Server) handleSearchCategories(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		s.errorResponse(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}
	s.jsonResponse(w, http.StatusOK, s.analyzer.Recommender().SearchCategories(term))
}

// handleListRoles returns the selectable taxonomy roles.
func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	sets := s.catalog.KeywordSets()
	resp := RolesResponse{Roles: make([]RoleSummary, 0, len(sets))}
	for _, set := range sets {
		resp.Roles = append(resp.Roles, RoleSummary{
			ID:          set.ID,
			DisplayName: set.DisplayName,
			Description: set.Description,
		})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleHealth reports server health and cached model availability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if s.extractor != nil {
		resp.LLMAvailable = s.extractor.IsAvailable(r.Context())
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
