package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/havenlink/communitymatch/internal/api/validation"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
)

// IntakeHandler handles clinician intake of clinical constraints.
type IntakeHandler struct {
	constraintRepo repositories.ConstraintRepository
}

// NewIntakeHandler creates a new intake handler.
func NewIntakeHandler(constraintRepo repositories.ConstraintRepository) *IntakeHandler {
	return &IntakeHandler{
		constraintRepo: constraintRepo,
	}
}

// CreateConstraints handles POST /api/patients/{id}/constraints
func (h *IntakeHandler) CreateConstraints(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")
	if patientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := validation.ValidateConstraintsPayload(payload); err != nil {
		respondWithAppError(w, err)
		return
	}

	var constraints entities.ClinicalConstraints
	if err := json.Unmarshal(payload, &constraints); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The path owns patient identity; the body must agree or omit it.
	if constraints.PatientID != "" && constraints.PatientID != patientID {
		respondWithError(w, http.StatusBadRequest, "patient ID in body does not match URL")
		return
	}
	constraints.PatientID = patientID
	constraints.ID = uuid.New().String()
	constraints.CreatedAt = time.Now().UTC()

	if err := constraints.Validate(); err != nil {
		respondWithAppError(w, err)
		return
	}

	if err := h.constraintRepo.Create(r.Context(), &constraints); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, constraints)
}

// GetLatestConstraints handles GET /api/patients/{id}/constraints
func (h *IntakeHandler) GetLatestConstraints(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")
	if patientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	constraints, err := h.constraintRepo.GetLatestByPatient(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, constraints)
}
