package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/havenlink/communitymatch/internal/api/handlers"
	"github.com/havenlink/communitymatch/internal/application/services"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/infrastructure/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchableResource(id string) *entities.Resource {
	return &entities.Resource{
		ID:               id,
		Name:             "Evening Walking Group",
		Tier:             entities.TierLifestyle,
		DiagnosesServed:  []string{entities.DiagnosisGeneralPopulation},
		AgeGroups:        []string{"adult"},
		GroupSize:        entities.GroupSizeSmall,
		InteractionStyle: entities.InteractionSideBySide,
		Commitment:       entities.CommitmentDropIn,
		Sensory: entities.SensoryProfile{
			Noise:    entities.NoiseQuiet,
			Lighting: entities.LightNormal,
			Crowding: entities.CrowdingSpacious,
		},
		Schedule: entities.Schedule{
			Days:      []string{"tuesday"},
			TimeSlots: []entities.TimeOfDay{entities.TimeEvening},
		},
		TransitAccessible: true,
		Cost:              entities.Cost{Type: entities.CostFree},
		IsActive:          true,
	}
}

func newMatchFixture(t *testing.T) (*handlers.MatchHandler, *stubRecommendationRepo) {
	t.Helper()

	resources := &stubResourceRepo{resources: []*entities.Resource{matchableResource("res-1")}}
	constraints := &stubConstraintRepo{latest: &entities.ClinicalConstraints{
		ID:               "constraint-1",
		PatientID:        "patient-1",
		PrimaryDiagnosis: "social_anxiety",
		AgeGroup:         "adult",
		ApprovedTiers:    []entities.Tier{entities.TierLifestyle},
	}}
	assessments := &stubAssessmentRepo{latest: &entities.PatientAssessment{
		ID:        "assessment-1",
		PatientID: "patient-1",
		Availability: entities.Availability{
			WeekdayEvenings: true,
		},
		TransportAccess:      entities.TransportPublicTransit,
		CostConstraint:       entities.CostConstraintFreeOnly,
		EnergyPattern:        entities.EnergyEvening,
		PreferredGroupSize:   entities.GroupSizeSmall,
		PreferredInteraction: entities.InteractionSideBySide,
	}}
	recommendations := &stubRecommendationRepo{}

	service := services.NewRecommendationService(resources, constraints, assessments, recommendations, services.NewMatchingService())

	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	return handlers.NewMatchHandler(service, metrics), recommendations
}

func TestMatchHandler_GenerateMatches(t *testing.T) {
	t.Run("creates and returns a ranked run", func(t *testing.T) {
		handler, repo := newMatchFixture(t)

		req := httptest.NewRequest("POST", "/api/patients/patient-1/matches", nil)
		req.SetPathValue("id", "patient-1")
		w := httptest.NewRecorder()

		handler.GenerateMatches(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, repo.runs, 1)

		var response struct {
			Matches []*entities.Recommendation `json:"matches"`
			Count   int                        `json:"count"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		require.Equal(t, 1, response.Count)
		assert.Equal(t, "res-1", response.Matches[0].ResourceID)
		assert.Equal(t, 1, response.Matches[0].Rank)
		assert.NotEmpty(t, response.Matches[0].Rationale.Summary)
	})

	t.Run("404 when the patient has no constraints", func(t *testing.T) {
		handler, _ := newMatchFixture(t)

		req := httptest.NewRequest("POST", "/api/patients/unknown/matches", nil)
		req.SetPathValue("id", "unknown")
		w := httptest.NewRecorder()

		handler.GenerateMatches(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMatchHandler_GetMatches(t *testing.T) {
	handler, repo := newMatchFixture(t)

	// Generate a run first so there is something to read back.
	genReq := httptest.NewRequest("POST", "/api/patients/patient-1/matches", nil)
	genReq.SetPathValue("id", "patient-1")
	handler.GenerateMatches(httptest.NewRecorder(), genReq)
	require.Len(t, repo.runs, 1)

	req := httptest.NewRequest("GET", "/api/patients/patient-1/matches", nil)
	req.SetPathValue("id", "patient-1")
	w := httptest.NewRecorder()

	handler.GetMatches(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
}
