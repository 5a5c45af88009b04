package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
	"github.com/havenlink/communitymatch/internal/infrastructure/clients/postgres"
	apperrors "github.com/havenlink/communitymatch/pkg/errors"
)

var recommendationColumns = []interface{}{
	"id", "run_id", "patient_id", "resource_id", "constraint_id", "assessment_id",
	"rank", "score", "rationale", "response", "responded_at", "created_at",
}

// RecommendationAdapter implements the RecommendationRepository interface.
type RecommendationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRecommendationAdapter creates a new recommendation adapter.
func NewRecommendationAdapter(client *postgres.Client) repositories.RecommendationRepository {
	return &RecommendationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// CreateRun stores every row of one ranked run in a single transaction
// so a patient never sees a partially written run.
func (a *RecommendationAdapter) CreateRun(ctx context.Context, recommendations []*entities.Recommendation) error {
	if len(recommendations) == 0 {
		return nil
	}

	records := make([]interface{}, 0, len(recommendations))
	for _, rec := range recommendations {
		rationale, err := rec.RationaleJSON()
		if err != nil {
			return apperrors.NewInternalError("failed to serialize rationale", err)
		}

		var respondedAt sql.NullTime
		if rec.RespondedAt != nil {
			respondedAt = sql.NullTime{Time: *rec.RespondedAt, Valid: true}
		}

		records = append(records, goqu.Record{
			"id":            rec.ID,
			"run_id":        rec.RunID,
			"patient_id":    rec.PatientID,
			"resource_id":   rec.ResourceID,
			"constraint_id": rec.ConstraintID,
			"assessment_id": rec.AssessmentID,
			"rank":          rec.Rank,
			"score":         rec.Score,
			"rationale":     rationale,
			"response":      sql.NullString{String: string(rec.Response), Valid: rec.Response != ""},
			"responded_at":  respondedAt,
			"created_at":    rec.CreatedAt,
		})
	}

	query, args, err := a.db.Insert("recommendations").Rows(records...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build recommendation insert query", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return apperrors.NewInternalError("failed to create recommendation run", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit recommendation run", err)
	}

	return nil
}

// GetByID retrieves a single recommendation by ID.
func (a *RecommendationAdapter) GetByID(ctx context.Context, id string) (*entities.Recommendation, error) {
	query, args, err := a.db.Select(recommendationColumns...).
		From("recommendations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build recommendation query", err)
	}

	rec, err := scanRecommendation(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("recommendation with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get recommendation", err)
	}

	return rec, nil
}

// ListLatestByPatient retrieves the most recent run for a patient in
// rank order. The latest run is resolved by created_at, which is the
// same for every row of a run.
func (a *RecommendationAdapter) ListLatestByPatient(ctx context.Context, patientID string) ([]*entities.Recommendation, error) {
	latestRun := a.db.Select("run_id").
		From("recommendations").
		Where(goqu.Ex{"patient_id": patientID}).
		Order(goqu.I("created_at").Desc()).
		Limit(1)

	query, args, err := a.db.Select(recommendationColumns...).
		From("recommendations").
		Where(goqu.Ex{"patient_id": patientID, "run_id": latestRun}).
		Order(goqu.I("rank").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build recommendation list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list recommendations", err)
	}
	defer rows.Close()

	recommendations := []*entities.Recommendation{}
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan recommendation", err)
		}
		recommendations = append(recommendations, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating recommendations", err)
	}

	return recommendations, nil
}

// RecordResponse stores the patient's interest or dismissal.
func (a *RecommendationAdapter) RecordResponse(ctx context.Context, id string, response entities.PatientResponse, respondedAt time.Time) error {
	query, args, err := a.db.Update("recommendations").
		Set(goqu.Record{
			"response":     string(response),
			"responded_at": respondedAt,
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build response update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to record response", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("recommendation with id %s not found", id))
	}

	return nil
}

func scanRecommendation(row rowScanner) (*entities.Recommendation, error) {
	rec := &entities.Recommendation{}
	var (
		rationale   []byte
		response    sql.NullString
		respondedAt sql.NullTime
	)

	err := row.Scan(
		&rec.ID,
		&rec.RunID,
		&rec.PatientID,
		&rec.ResourceID,
		&rec.ConstraintID,
		&rec.AssessmentID,
		&rec.Rank,
		&rec.Score,
		&rationale,
		&response,
		&respondedAt,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(rationale) > 0 {
		if err := json.Unmarshal(rationale, &rec.Rationale); err != nil {
			return nil, fmt.Errorf("malformed rationale payload: %w", err)
		}
	}
	rec.Response = entities.PatientResponse(response.String)
	if respondedAt.Valid {
		rec.RespondedAt = &respondedAt.Time
	}

	return rec, nil
}
