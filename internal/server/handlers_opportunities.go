package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/opportunity-matcher/internal/types"
)

// BatchInsertRequest represents the request body for /opportunities/batch
type BatchInsertRequest struct {
	Opportunities []types.OpportunityRecord `json:"opportunities" validate:"required,min=1,dive"`
}

// BatchInsertResponse represents the response for /opportunities/batch
type BatchInsertResponse struct {
	Inserted int      `json:"inserted"`
	IDs      []string `json:"ids"`
}

// handleBatchInsert ingests a batch of opportunity records. Skill lists are
// canonicalized on the way in and upserted into the catalog so later ranking
// runs compare canonical keys, and enrichment can resolve them back to names.
func (s *Server) handleBatchInsert(w http.ResponseWriter, r *http.Request) {
	var req BatchInsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		verr := &ErrValidation{Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	for i := range req.Opportunities {
		rec := &req.Opportunities[i]
		if rec.Title == "" {
			s.errorResponse(w, http.StatusBadRequest, "every opportunity needs a title")
			return
		}
		if !rec.Type.Valid() || !rec.Modality.Valid() {
			s.errorResponse(w, http.StatusBadRequest, "unrecognized type or modality on "+rec.Title)
			return
		}

		rec.RequiredSkills = s.registerSkills(r, rec.RequiredSkills)
		rec.OptionalSkills = s.registerSkills(r, rec.OptionalSkills)
	}

	ids, err := s.inserter.InsertBatch(r.Context(), req.Opportunities)
	if err != nil {
		s.logger.Error("inserting opportunities", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to insert opportunities")
		return
	}

	s.jsonResponse(w, http.StatusCreated, BatchInsertResponse{Inserted: len(ids), IDs: ids})
}

// registerSkills canonicalizes raw skill names and upserts them into the
// catalog, returning the canonical keys. Catalog failures are logged, not
// fatal: the canonical key is still stored on the record.
func (s *Server) registerSkills(r *http.Request, raw []string) []string {
	keys := s.canon.CanonicalizeAll(raw)
	if s.skills == nil {
		return keys
	}
	seen := make(map[string]bool, len(raw))
	for _, name := range raw {
		key := s.canon.Canonicalize(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if _, err := s.skills.EnsureSkill(r.Context(), name); err != nil {
			s.logger.Warn("skill upsert failed", zap.String("skill", name), zap.Error(err))
		}
	}
	return keys
}
