package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/havenlink/communitymatch/internal/api/handlers"
	"github.com/havenlink/communitymatch/internal/application/services"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponseFixture(repo *stubRecommendationRepo) *handlers.ResponseHandler {
	service := services.NewRecommendationService(
		&stubResourceRepo{}, &stubConstraintRepo{}, &stubAssessmentRepo{}, repo, services.NewMatchingService(),
	)
	return handlers.NewResponseHandler(service)
}

func TestResponseHandler_RecordResponse(t *testing.T) {
	t.Run("records an interested response", func(t *testing.T) {
		repo := &stubRecommendationRepo{runs: [][]*entities.Recommendation{{
			{ID: "rec-1", RunID: "run-1", PatientID: "patient-1"},
		}}}
		handler := newResponseFixture(repo)

		req := httptest.NewRequest("POST", "/api/recommendations/rec-1/response", strings.NewReader(`{"response":"interested"}`))
		req.SetPathValue("id", "rec-1")
		w := httptest.NewRecorder()

		handler.RecordResponse(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entities.ResponseInterested, repo.responses["rec-1"])
	})

	t.Run("rejects an unknown response value", func(t *testing.T) {
		repo := &stubRecommendationRepo{}
		handler := newResponseFixture(repo)

		req := httptest.NewRequest("POST", "/api/recommendations/rec-1/response", strings.NewReader(`{"response":"maybe"}`))
		req.SetPathValue("id", "rec-1")
		w := httptest.NewRecorder()

		handler.RecordResponse(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, repo.responses)
	})

	t.Run("404 for a recommendation that does not exist", func(t *testing.T) {
		repo := &stubRecommendationRepo{}
		handler := newResponseFixture(repo)

		req := httptest.NewRequest("POST", "/api/recommendations/ghost/response", strings.NewReader(`{"response":"dismissed"}`))
		req.SetPathValue("id", "ghost")
		w := httptest.NewRecorder()

		handler.RecordResponse(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
