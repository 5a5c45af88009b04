package repositories

import (
	"context"
	"time"

	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// RecommendationRepository defines persistence for ranked matching runs.
type RecommendationRepository interface {
	// CreateRun stores every row of one ranked run atomically
	CreateRun(ctx context.Context, recommendations []*entities.Recommendation) error

	// GetByID retrieves a single recommendation by ID
	GetByID(ctx context.Context, id string) (*entities.Recommendation, error)

	// ListLatestByPatient retrieves the most recent run for a patient,
	// ordered by rank
	ListLatestByPatient(ctx context.Context, patientID string) ([]*entities.Recommendation, error)

	// RecordResponse stores the patient's interest or dismissal
	RecordResponse(ctx context.Context, id string, response entities.PatientResponse, respondedAt time.Time) error
}
