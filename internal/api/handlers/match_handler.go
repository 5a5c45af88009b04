package handlers

import (
	"net/http"
	"time"

	"github.com/havenlink/communitymatch/internal/application/services"
	"github.com/havenlink/communitymatch/internal/infrastructure/observability"
)

// MatchHandler handles matching runs and their retrieval.
type MatchHandler struct {
	recommendationService *services.RecommendationService
	metrics               *observability.Metrics
	defaultLimit          int
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(recommendationService *services.RecommendationService, metrics *observability.Metrics) *MatchHandler {
	return &MatchHandler{
		recommendationService: recommendationService,
		metrics:               metrics,
	}
}

// SetDefaultLimit overrides the shortlist size used when the request
// does not carry a limit query parameter.
func (h *MatchHandler) SetDefaultLimit(limit int) {
	if limit > 0 {
		h.defaultLimit = limit
	}
}

// GenerateMatches handles POST /api/patients/{id}/matches
func (h *MatchHandler) GenerateMatches(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")
	if patientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	limit := parseIntParam(r, "limit", h.defaultLimit)

	start := time.Now()
	recommendations, err := h.recommendationService.GenerateForPatient(r.Context(), patientID, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	observability.RecordMatchRun(r.Context(), h.metrics, len(recommendations), time.Since(start))

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"matches": recommendations,
		"count":   len(recommendations),
	})
}

// GetMatches handles GET /api/patients/{id}/matches
func (h *MatchHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")
	if patientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	recommendations, err := h.recommendationService.GetForPatient(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"matches": recommendations,
		"count":   len(recommendations),
	})
}
