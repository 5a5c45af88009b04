package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/providers"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
	apperrors "github.com/havenlink/communitymatch/pkg/errors"
)

// RecommendationService orchestrates a matching run for one patient:
// it loads the catalog snapshot and the patient's records, runs the
// pipeline, persists the ranked output and publishes an event.
type RecommendationService struct {
	resources       repositories.ResourceRepository
	constraints     repositories.ConstraintRepository
	assessments     repositories.AssessmentRepository
	recommendations repositories.RecommendationRepository
	matcher         *MatchingService
	eventBus        providers.EventBus
	catalogPageSize int
}

// NewRecommendationService creates a recommendation service.
func NewRecommendationService(
	resources repositories.ResourceRepository,
	constraints repositories.ConstraintRepository,
	assessments repositories.AssessmentRepository,
	recommendations repositories.RecommendationRepository,
	matcher *MatchingService,
) *RecommendationService {
	return &RecommendationService{
		resources:       resources,
		constraints:     constraints,
		assessments:     assessments,
		recommendations: recommendations,
		matcher:         matcher,
		catalogPageSize: 500,
	}
}

// SetEventBus enables run/response event publication.
func (s *RecommendationService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// SetCatalogPageSize bounds the catalog snapshot loaded per run.
func (s *RecommendationService) SetCatalogPageSize(size int) {
	if size > 0 {
		s.catalogPageSize = size
	}
}

// GenerateForPatient runs the pipeline for a patient and persists the
// ranked run. The catalog is loaded once per call as an immutable
// snapshot; refresh cadence belongs to the storage layer.
func (s *RecommendationService) GenerateForPatient(ctx context.Context, patientID string, limit int) ([]*entities.Recommendation, error) {
	constraints, err := s.constraints.GetLatestByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	assessment, err := s.assessments.GetLatestByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	active := true
	catalog, err := s.resources.List(ctx, repositories.ResourceFilter{
		IsActive: &active,
		Limit:    s.catalogPageSize,
	})
	if err != nil {
		return nil, err
	}

	matches := s.matcher.Match(catalog, constraints, assessment, limit)

	runID := uuid.New().String()
	now := time.Now().UTC()
	recs := make([]*entities.Recommendation, len(matches))
	for i, m := range matches {
		recs[i] = &entities.Recommendation{
			ID:           uuid.New().String(),
			RunID:        runID,
			PatientID:    patientID,
			ResourceID:   m.Resource.ID,
			ConstraintID: constraints.ID,
			AssessmentID: assessment.ID,
			Rank:         i + 1,
			Score:        m.Score,
			Rationale:    m.Rationale,
			CreatedAt:    now,
		}
	}

	if err := s.recommendations.CreateRun(ctx, recs); err != nil {
		return nil, err
	}

	s.publish(ctx, &entities.RecommendationEvent{
		ID:          uuid.New().String(),
		Type:        entities.EventRunCompleted,
		PatientID:   patientID,
		RunID:       runID,
		ResourceIDs: resourceIDs(recs),
		OccurredAt:  now,
	})

	return recs, nil
}

// GetForPatient returns the most recently persisted run for a patient.
func (s *RecommendationService) GetForPatient(ctx context.Context, patientID string) ([]*entities.Recommendation, error) {
	return s.recommendations.ListLatestByPatient(ctx, patientID)
}

// RecordResponse stores the patient's interest or dismissal for one
// recommendation. The response is recorded for later analysis only; it
// never feeds back into scoring.
func (s *RecommendationService) RecordResponse(ctx context.Context, recommendationID string, response entities.PatientResponse) error {
	if !response.IsValid() {
		return apperrors.NewValidationError("response must be interested or dismissed")
	}

	rec, err := s.recommendations.GetByID(ctx, recommendationID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.recommendations.RecordResponse(ctx, recommendationID, response, now); err != nil {
		return err
	}

	s.publish(ctx, &entities.RecommendationEvent{
		ID:         uuid.New().String(),
		Type:       entities.EventResponseRecorded,
		PatientID:  rec.PatientID,
		RunID:      rec.RunID,
		Response:   response,
		OccurredAt: now,
	})

	return nil
}

// publish sends an event on both the global and per-patient channels.
// Event delivery is best-effort; a bus failure never fails the run.
func (s *RecommendationService) publish(ctx context.Context, event *entities.RecommendationEvent) {
	if s.eventBus == nil {
		return
	}
	for _, channel := range []string{providers.EventChannelRecommendations, providers.GetPatientChannel(event.PatientID)} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			log.Printf("Warning: failed to publish %s event for patient %s: %v", event.Type, event.PatientID, err)
		}
	}
}

func resourceIDs(recs []*entities.Recommendation) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ResourceID
	}
	return ids
}
