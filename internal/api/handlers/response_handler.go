package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/havenlink/communitymatch/internal/application/services"
	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// ResponseHandler records patient reactions to recommendations.
type ResponseHandler struct {
	recommendationService *services.RecommendationService
}

// NewResponseHandler creates a new response handler.
func NewResponseHandler(recommendationService *services.RecommendationService) *ResponseHandler {
	return &ResponseHandler{
		recommendationService: recommendationService,
	}
}

type responseRequest struct {
	Response entities.PatientResponse `json:"response"`
}

// RecordResponse handles POST /api/recommendations/{id}/response
func (h *ResponseHandler) RecordResponse(w http.ResponseWriter, r *http.Request) {
	recommendationID := r.PathValue("id")
	if recommendationID == "" {
		respondWithError(w, http.StatusBadRequest, "recommendation ID is required")
		return
	}

	var req responseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.recommendationService.RecordResponse(r.Context(), recommendationID, req.Response); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"id":       recommendationID,
		"response": string(req.Response),
	})
}
