package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/opportunity-matcher/internal/catalog"
	"github.com/jonathan/opportunity-matcher/internal/matching"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

type fakeLister struct {
	records []types.OpportunityRecord
	err     error
}

func (f *fakeLister) ListForMatching(_ context.Context, _ *types.Preferences, _ *types.Filters) ([]types.OpportunityRecord, error) {
	return f.records, f.err
}

type fakeInserter struct {
	received []types.OpportunityRecord
	err      error
}

func (f *fakeInserter) InsertBatch(_ context.Context, records []types.OpportunityRecord) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.received = records
	ids := make([]string, len(records))
	for i := range records {
		ids[i] = fmt.Sprintf("id-%d", i)
	}
	return ids, nil
}

type fakeEnsurer struct {
	names []string
}

func (f *fakeEnsurer) EnsureSkill(_ context.Context, name string) (catalog.Skill, error) {
	f.names = append(f.names, name)
	return catalog.Skill{Key: name, Name: name}, nil
}

func testServer(lister OpportunityLister, inserter OpportunityInserter, skills SkillEnsurer) *Server {
	return newServer(
		lister,
		inserter,
		skills,
		catalog.NewCanonicalizer(catalog.DefaultAliases),
		matching.NewEngine(matching.EngineConfig{}),
		zap.NewNop(),
	)
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func TestHandleMatch_Success(t *testing.T) {
	lister := &fakeLister{records: []types.OpportunityRecord{
		{ID: "a", Title: "Data Engineer", OrganizationKey: "acme", RequiredSkills: []string{"python", "sql"}},
		{ID: "b", Title: "Pastry Chef", OrganizationKey: "bakery", RequiredSkills: []string{"baking"}},
	}}
	s := testServer(lister, nil, nil)

	w := postJSON(t, s, "/match", MatchRequest{
		CandidateProfile: &types.CandidateProfile{
			Skills:      []string{"python", "sql"},
			SummaryText: "data engineer",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	_, err := uuid.Parse(resp.RunID)
	assert.NoError(t, err, "run_id must be a UUID")
	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, "a", resp.Matches[0].OpportunityID)
	assert.Equal(t, 2, resp.Metadata.TotalEvaluated)
	assert.Equal(t, len(resp.Matches), resp.Metadata.ReturnedMatches)
	for i := 1; i < len(resp.Matches); i++ {
		assert.GreaterOrEqual(t, resp.Matches[i-1].MatchScore, resp.Matches[i].MatchScore)
	}
}

func TestHandleMatch_CanonicalizesCandidateSkills(t *testing.T) {
	// Ingested records store canonical skill keys; a candidate submitting the
	// same skills under raw spellings must still score a full skill match.
	lister := &fakeLister{records: []types.OpportunityRecord{
		{ID: "a", Title: "Frontend Developer", OrganizationKey: "acme", RequiredSkills: []string{"react", "sql"}},
	}}
	s := testServer(lister, nil, nil)

	w := postJSON(t, s, "/match", MatchRequest{
		CandidateProfile: &types.CandidateProfile{
			Skills:      []string{"React.js", "SQL"},
			SummaryText: "frontend developer",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, 1.0, resp.Matches[0].Breakdown.Skills)
}

func TestHandleMatch_RejectsEmptyProfile(t *testing.T) {
	s := testServer(&fakeLister{}, nil, nil)

	w := postJSON(t, s, "/match", MatchRequest{CandidateProfile: &types.CandidateProfile{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CV data required")

	w = postJSON(t, s, "/match", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleMatch_RejectsInvalidEnums(t *testing.T) {
	s := testServer(&fakeLister{}, nil, nil)

	w := postJSON(t, s, "/match", MatchRequest{
		CandidateProfile: &types.CandidateProfile{Skills: []string{"python"}},
		Preferences:      &types.Preferences{Modality: "SOMEWHERE"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
	assert.Contains(t, w.Body.String(), "Modality")
}

func TestHandleMatch_MalformedBody(t *testing.T) {
	s := testServer(&fakeLister{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/match", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestHandleMatch_StoreFailure(t *testing.T) {
	s := testServer(&fakeLister{err: errors.New("connection refused")}, nil, nil)

	w := postJSON(t, s, "/match", MatchRequest{
		CandidateProfile: &types.CandidateProfile{Skills: []string{"python"}},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load opportunities")
}

func TestHandleBatchInsert_Success(t *testing.T) {
	inserter := &fakeInserter{}
	ensurer := &fakeEnsurer{}
	s := testServer(nil, inserter, ensurer)

	w := postJSON(t, s, "/opportunities/batch", BatchInsertRequest{
		Opportunities: []types.OpportunityRecord{{
			Title:           "Frontend Developer",
			OrganizationKey: "acme",
			Type:            types.TypeEmployment,
			RequiredSkills:  []string{"React.js", "reactjs", "TypeScript"},
			OptionalSkills:  []string{"Search Engine Optimization"},
		}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp BatchInsertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Inserted)
	assert.Equal(t, []string{"id-0"}, resp.IDs)

	require.Len(t, inserter.received, 1)
	assert.Equal(t, []string{"react", "ts"}, inserter.received[0].RequiredSkills)
	assert.Equal(t, []string{"seo"}, inserter.received[0].OptionalSkills)

	// One upsert per distinct canonical key, using the first raw spelling.
	assert.Equal(t, []string{"React.js", "TypeScript", "Search Engine Optimization"}, ensurer.names)
}

func TestHandleBatchInsert_Validation(t *testing.T) {
	s := testServer(nil, &fakeInserter{}, nil)

	w := postJSON(t, s, "/opportunities/batch", BatchInsertRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
	assert.Contains(t, w.Body.String(), "Opportunities")

	w = postJSON(t, s, "/opportunities/batch", BatchInsertRequest{
		Opportunities: []types.OpportunityRecord{{OrganizationKey: "acme"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title")

	w = postJSON(t, s, "/opportunities/batch", BatchInsertRequest{
		Opportunities: []types.OpportunityRecord{{Title: "X", Type: "GIG"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unrecognized type or modality")
}

func TestHandleBatchInsert_StoreFailure(t *testing.T) {
	s := testServer(nil, &fakeInserter{err: errors.New("connection refused")}, nil)

	w := postJSON(t, s, "/opportunities/batch", BatchInsertRequest{
		Opportunities: []types.OpportunityRecord{{Title: "X"}},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleHealth(t *testing.T) {
	s := testServer(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestWithCORS_Preflight(t *testing.T) {
	s := testServer(nil, nil, nil)
	handler := s.withCORS(s.routes())

	req := httptest.NewRequest(http.MethodOptions, "/match", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
