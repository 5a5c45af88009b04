package repositories

import (
	"context"

	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// AssessmentRepository defines persistence for patient preference profiles.
type AssessmentRepository interface {
	// Create stores a new assessment
	Create(ctx context.Context, assessment *entities.PatientAssessment) error

	// GetByID retrieves an assessment by ID
	GetByID(ctx context.Context, id string) (*entities.PatientAssessment, error)

	// GetLatestByPatient retrieves the most recent assessment for a patient
	GetLatestByPatient(ctx context.Context, patientID string) (*entities.PatientAssessment, error)
}
