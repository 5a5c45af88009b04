package repositories

import (
	"context"

	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// ConstraintRepository defines persistence for clinician guardrails.
type ConstraintRepository interface {
	// Create stores a new constraints record
	Create(ctx context.Context, constraints *entities.ClinicalConstraints) error

	// GetByID retrieves a constraints record by ID
	GetByID(ctx context.Context, id string) (*entities.ClinicalConstraints, error)

	// GetLatestByPatient retrieves the most recent constraints for a patient
	GetLatestByPatient(ctx context.Context, patientID string) (*entities.ClinicalConstraints, error)
}
