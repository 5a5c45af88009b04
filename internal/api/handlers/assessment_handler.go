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

// AssessmentHandler handles patient self-assessment submissions.
type AssessmentHandler struct {
	assessmentRepo repositories.AssessmentRepository
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(assessmentRepo repositories.AssessmentRepository) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentRepo: assessmentRepo,
	}
}

// CreateAssessment handles POST /api/patients/{id}/assessments
func (h *AssessmentHandler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
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

	if err := validation.ValidateAssessmentPayload(payload); err != nil {
		respondWithAppError(w, err)
		return
	}

	var assessment entities.PatientAssessment
	if err := json.Unmarshal(payload, &assessment); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if assessment.PatientID != "" && assessment.PatientID != patientID {
		respondWithError(w, http.StatusBadRequest, "patient ID in body does not match URL")
		return
	}
	assessment.PatientID = patientID
	assessment.ID = uuid.New().String()
	assessment.CreatedAt = time.Now().UTC()

	if err := assessment.Validate(); err != nil {
		respondWithAppError(w, err)
		return
	}

	if err := h.assessmentRepo.Create(r.Context(), &assessment); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, assessment)
}

// GetLatestAssessment handles GET /api/patients/{id}/assessments
func (h *AssessmentHandler) GetLatestAssessment(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")
	if patientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	assessment, err := h.assessmentRepo.GetLatestByPatient(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, assessment)
}
