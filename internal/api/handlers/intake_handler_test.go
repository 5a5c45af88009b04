package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/havenlink/communitymatch/internal/api/handlers"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeHandler_CreateConstraints(t *testing.T) {
	t.Run("accepts a valid payload", func(t *testing.T) {
		repo := &stubConstraintRepo{}
		handler := handlers.NewIntakeHandler(repo)

		body := `{
			"primary_diagnosis": "social_anxiety",
			"age_group": "adult",
			"treatment_phase": "stabilizing",
			"approved_tiers": ["structured_community", "lifestyle"],
			"contraindicated_environments": ["alcohol"]
		}`
		req := httptest.NewRequest("POST", "/api/patients/patient-1/constraints", strings.NewReader(body))
		req.SetPathValue("id", "patient-1")
		w := httptest.NewRecorder()

		handler.CreateConstraints(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, repo.created, 1)
		created := repo.created[0]
		assert.Equal(t, "patient-1", created.PatientID)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, entities.PhaseStabilizing, created.TreatmentPhase)
		assert.Equal(t, []entities.Tier{entities.TierStructuredCommunity, entities.TierLifestyle}, created.ApprovedTiers)
	})

	t.Run("rejects payload missing approved tiers", func(t *testing.T) {
		repo := &stubConstraintRepo{}
		handler := handlers.NewIntakeHandler(repo)

		body := `{"primary_diagnosis": "social_anxiety", "age_group": "adult"}`
		req := httptest.NewRequest("POST", "/api/patients/patient-1/constraints", strings.NewReader(body))
		req.SetPathValue("id", "patient-1")
		w := httptest.NewRecorder()

		handler.CreateConstraints(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, repo.created)
	})

	t.Run("rejects an unknown tier value", func(t *testing.T) {
		repo := &stubConstraintRepo{}
		handler := handlers.NewIntakeHandler(repo)

		body := `{"primary_diagnosis": "ptsd", "age_group": "adult", "approved_tiers": ["inpatient"]}`
		req := httptest.NewRequest("POST", "/api/patients/patient-1/constraints", strings.NewReader(body))
		req.SetPathValue("id", "patient-1")
		w := httptest.NewRecorder()

		handler.CreateConstraints(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a body that names a different patient", func(t *testing.T) {
		repo := &stubConstraintRepo{}
		handler := handlers.NewIntakeHandler(repo)

		body := `{"patient_id": "someone-else", "primary_diagnosis": "ptsd", "age_group": "adult", "approved_tiers": ["clinical"]}`
		req := httptest.NewRequest("POST", "/api/patients/patient-1/constraints", strings.NewReader(body))
		req.SetPathValue("id", "patient-1")
		w := httptest.NewRecorder()

		handler.CreateConstraints(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestIntakeHandler_GetLatestConstraints(t *testing.T) {
	repo := &stubConstraintRepo{latest: &entities.ClinicalConstraints{
		ID:               "constraint-1",
		PatientID:        "patient-1",
		PrimaryDiagnosis: "depression",
		AgeGroup:         "adult",
		ApprovedTiers:    []entities.Tier{entities.TierLifestyle},
	}}
	handler := handlers.NewIntakeHandler(repo)

	t.Run("returns the latest record", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/patients/patient-1/constraints", nil)
		req.SetPathValue("id", "patient-1")
		w := httptest.NewRecorder()

		handler.GetLatestConstraints(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got entities.ClinicalConstraints
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, "constraint-1", got.ID)
	})

	t.Run("404 when nothing is on file", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/patients/unknown/constraints", nil)
		req.SetPathValue("id", "unknown")
		w := httptest.NewRecorder()

		handler.GetLatestConstraints(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
