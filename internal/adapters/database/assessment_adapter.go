package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
	"github.com/havenlink/communitymatch/internal/infrastructure/clients/postgres"
	apperrors "github.com/havenlink/communitymatch/pkg/errors"
	"github.com/lib/pq"
)

var assessmentColumns = []interface{}{
	"id", "patient_id",
	"weekday_mornings", "weekday_afternoons", "weekday_evenings", "weekends",
	"transport_access", "max_travel_miles", "cost_constraint", "energy_pattern",
	"preferred_group_size", "preferred_interaction", "preferred_commitment",
	"interest_categories", "past_interests", "diagnosis_extension", "created_at",
}

// AssessmentAdapter implements the AssessmentRepository interface.
type AssessmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAssessmentAdapter creates a new patient assessment adapter.
func NewAssessmentAdapter(client *postgres.Client) repositories.AssessmentRepository {
	return &AssessmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new assessment. Like constraints, assessments are
// append-only snapshots of patient preferences.
func (a *AssessmentAdapter) Create(ctx context.Context, assessment *entities.PatientAssessment) error {
	var extension interface{}
	if len(assessment.DiagnosisExtension) > 0 {
		extension = []byte(assessment.DiagnosisExtension)
	}

	record := goqu.Record{
		"id":                    assessment.ID,
		"patient_id":            assessment.PatientID,
		"weekday_mornings":      assessment.Availability.WeekdayMornings,
		"weekday_afternoons":    assessment.Availability.WeekdayAfternoons,
		"weekday_evenings":      assessment.Availability.WeekdayEvenings,
		"weekends":              assessment.Availability.Weekends,
		"transport_access":      string(assessment.TransportAccess),
		"max_travel_miles":      assessment.MaxTravelMiles,
		"cost_constraint":       string(assessment.CostConstraint),
		"energy_pattern":        string(assessment.EnergyPattern),
		"preferred_group_size":  string(assessment.PreferredGroupSize),
		"preferred_interaction": string(assessment.PreferredInteraction),
		"preferred_commitment":  string(assessment.PreferredCommitment),
		"interest_categories":   pq.Array(assessment.InterestCategories),
		"past_interests":        pq.Array(assessment.PastInterests),
		"diagnosis_extension":   extension,
		"created_at":            assessment.CreatedAt,
	}

	query, args, err := a.db.Insert("patient_assessments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build assessment insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create patient assessment", err)
	}

	return nil
}

// GetByID retrieves an assessment by ID.
func (a *AssessmentAdapter) GetByID(ctx context.Context, id string) (*entities.PatientAssessment, error) {
	query, args, err := a.db.Select(assessmentColumns...).
		From("patient_assessments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build assessment query", err)
	}

	assessment, err := scanAssessment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient assessment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient assessment", err)
	}

	return assessment, nil
}

// GetLatestByPatient retrieves the most recent assessment for a patient.
func (a *AssessmentAdapter) GetLatestByPatient(ctx context.Context, patientID string) (*entities.PatientAssessment, error) {
	query, args, err := a.db.Select(assessmentColumns...).
		From("patient_assessments").
		Where(goqu.Ex{"patient_id": patientID}).
		Order(goqu.I("created_at").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build assessment query", err)
	}

	assessment, err := scanAssessment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no assessment on file for patient %s", patientID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient assessment", err)
	}

	return assessment, nil
}

func scanAssessment(row rowScanner) (*entities.PatientAssessment, error) {
	assessment := &entities.PatientAssessment{}
	var (
		interests, pastInterests           pq.StringArray
		transport, cost, energy            string
		groupSize, interaction, commitment string
		extension                          []byte
	)

	err := row.Scan(
		&assessment.ID,
		&assessment.PatientID,
		&assessment.Availability.WeekdayMornings,
		&assessment.Availability.WeekdayAfternoons,
		&assessment.Availability.WeekdayEvenings,
		&assessment.Availability.Weekends,
		&transport,
		&assessment.MaxTravelMiles,
		&cost,
		&energy,
		&groupSize,
		&interaction,
		&commitment,
		&interests,
		&pastInterests,
		&extension,
		&assessment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	assessment.TransportAccess = entities.TransportAccess(transport)
	assessment.CostConstraint = entities.CostConstraint(cost)
	assessment.EnergyPattern = entities.EnergyPattern(energy)
	assessment.PreferredGroupSize = entities.GroupSize(groupSize)
	assessment.PreferredInteraction = entities.InteractionStyle(interaction)
	assessment.PreferredCommitment = entities.CommitmentLevel(commitment)
	assessment.InterestCategories = interests
	assessment.PastInterests = pastInterests
	if len(extension) > 0 {
		assessment.DiagnosisExtension = json.RawMessage(extension)
	}

	return assessment, nil
}
