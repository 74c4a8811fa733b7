package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/opportunity-matcher/internal/types"
)

// MatchRequest represents the request body for /match
type MatchRequest struct {
	CandidateProfile *types.CandidateProfile `json:"candidate_profile" validate:"required"`
	Preferences      *types.Preferences      `json:"preferences,omitempty"`
	Filters          *types.Filters          `json:"filters,omitempty"`
}

// MatchResponse represents the response for /match
type MatchResponse struct {
	RunID    string                 `json:"run_id"`
	Matches  []types.ScoreBreakdown `json:"matches"`
	Metadata types.RunMetadata      `json:"metadata"`
}

// handleMatch scores the submitted candidate profile against the stored
// opportunity set and returns the ranked top-K with breakdowns
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Missing preferences/filters default to empty objects.
	if req.Preferences == nil {
		req.Preferences = &types.Preferences{}
	}
	if req.Filters == nil {
		req.Filters = &types.Filters{}
	}

	// Reject invalid input before any scoring begins.
	if req.CandidateProfile == nil || req.CandidateProfile.Empty() {
		s.errorResponse(w, http.StatusBadRequest, "CV data required")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		verr := &ErrValidation{Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}
	for _, err := range []error{
		req.CandidateProfile.Validate(),
		req.Preferences.Validate(),
		req.Filters.Validate(),
	} {
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	// Stored opportunity skills are canonical keys; bring the candidate's
	// raw spellings onto the same keyspace before scoring.
	req.CandidateProfile.Skills = s.canon.CanonicalizeAll(req.CandidateProfile.Skills)

	opportunities, err := s.opportunities.ListForMatching(r.Context(), req.Preferences, req.Filters)
	if err != nil {
		s.logger.Error("listing opportunities", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load opportunities")
		return
	}

	result, err := s.engine.Match(r.Context(), req.CandidateProfile, req.Preferences, req.Filters, opportunities)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, MatchResponse{
		RunID:    uuid.New().String(),
		Matches:  result.Matches,
		Metadata: result.Metadata,
	})
}
