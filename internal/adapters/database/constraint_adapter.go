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

var constraintColumns = []interface{}{
	"id", "patient_id", "clinician_id", "primary_diagnosis", "comorbidities",
	"age_group", "treatment_phase", "approved_tiers", "treatment_goals",
	"contraindicated_environments", "diagnosis_extension", "notes", "created_at",
}

// ConstraintAdapter implements the ConstraintRepository interface.
type ConstraintAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewConstraintAdapter creates a new clinical constraint adapter.
func NewConstraintAdapter(client *postgres.Client) repositories.ConstraintRepository {
	return &ConstraintAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new constraint record. Records are append-only;
// updated guardrails arrive as a new row and GetLatestByPatient picks
// the most recent one.
func (a *ConstraintAdapter) Create(ctx context.Context, constraints *entities.ClinicalConstraints) error {
	var extension interface{}
	if len(constraints.DiagnosisExtension) > 0 {
		extension = []byte(constraints.DiagnosisExtension)
	}

	record := goqu.Record{
		"id":                           constraints.ID,
		"patient_id":                   constraints.PatientID,
		"clinician_id":                 sql.NullString{String: constraints.ClinicianID, Valid: constraints.ClinicianID != ""},
		"primary_diagnosis":            constraints.PrimaryDiagnosis,
		"comorbidities":                pq.Array(constraints.Comorbidities),
		"age_group":                    constraints.AgeGroup,
		"treatment_phase":              string(constraints.TreatmentPhase),
		"approved_tiers":               pq.Array(tierStrings(constraints.ApprovedTiers)),
		"treatment_goals":              pq.Array(constraints.TreatmentGoals),
		"contraindicated_environments": pq.Array(constraints.ContraindicatedEnvironments),
		"diagnosis_extension":          extension,
		"notes":                        sql.NullString{String: constraints.Notes, Valid: constraints.Notes != ""},
		"created_at":                   constraints.CreatedAt,
	}

	query, args, err := a.db.Insert("clinical_constraints").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build constraint insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create clinical constraints", err)
	}

	return nil
}

// GetByID retrieves a constraint record by ID.
func (a *ConstraintAdapter) GetByID(ctx context.Context, id string) (*entities.ClinicalConstraints, error) {
	query, args, err := a.db.Select(constraintColumns...).
		From("clinical_constraints").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build constraint query", err)
	}

	constraints, err := scanConstraints(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("clinical constraints with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get clinical constraints", err)
	}

	return constraints, nil
}

// GetLatestByPatient retrieves the most recent constraint record for a patient.
func (a *ConstraintAdapter) GetLatestByPatient(ctx context.Context, patientID string) (*entities.ClinicalConstraints, error) {
	query, args, err := a.db.Select(constraintColumns...).
		From("clinical_constraints").
		Where(goqu.Ex{"patient_id": patientID}).
		Order(goqu.I("created_at").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build constraint query", err)
	}

	constraints, err := scanConstraints(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no clinical constraints on file for patient %s", patientID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get clinical constraints", err)
	}

	return constraints, nil
}

func scanConstraints(row rowScanner) (*entities.ClinicalConstraints, error) {
	constraints := &entities.ClinicalConstraints{}
	var (
		comorbidities, approvedTiers pq.StringArray
		goals, contraindicated       pq.StringArray
		clinicianID, notes           sql.NullString
		phase                        string
		extension                    []byte
	)

	err := row.Scan(
		&constraints.ID,
		&constraints.PatientID,
		&clinicianID,
		&constraints.PrimaryDiagnosis,
		&comorbidities,
		&constraints.AgeGroup,
		&phase,
		&approvedTiers,
		&goals,
		&contraindicated,
		&extension,
		&notes,
		&constraints.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	constraints.ClinicianID = clinicianID.String
	constraints.Comorbidities = comorbidities
	constraints.TreatmentPhase = entities.TreatmentPhase(phase)
	constraints.ApprovedTiers = tierValues(approvedTiers)
	constraints.TreatmentGoals = goals
	constraints.ContraindicatedEnvironments = contraindicated
	if len(extension) > 0 {
		constraints.DiagnosisExtension = json.RawMessage(extension)
	}
	constraints.Notes = notes.String

	return constraints, nil
}

func tierStrings(tiers []entities.Tier) []string {
	out := make([]string, len(tiers))
	for i, t := range tiers {
		out[i] = string(t)
	}
	return out
}

func tierValues(tiers []string) []entities.Tier {
	out := make([]entities.Tier, len(tiers))
	for i, t := range tiers {
		out[i] = entities.Tier(t)
	}
	return out
}
