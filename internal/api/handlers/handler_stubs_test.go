package handlers_test

import (
	"context"
	"time"

	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
	apperrors "github.com/havenlink/communitymatch/pkg/errors"
)

type stubResourceRepo struct {
	resources []*entities.Resource
	created   []*entities.Resource
}

func (s *stubResourceRepo) Create(ctx context.Context, resource *entities.Resource) error {
	s.created = append(s.created, resource)
	s.resources = append(s.resources, resource)
	return nil
}

func (s *stubResourceRepo) GetByID(ctx context.Context, id string) (*entities.Resource, error) {
	for _, r := range s.resources {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("resource not found")
}

func (s *stubResourceRepo) Update(ctx context.Context, resource *entities.Resource) error {
	for i, r := range s.resources {
		if r.ID == resource.ID {
			s.resources[i] = resource
			return nil
		}
	}
	return apperrors.NewNotFoundError("resource not found")
}

func (s *stubResourceRepo) Delete(ctx context.Context, id string) error {
	for _, r := range s.resources {
		if r.ID == id {
			r.IsActive = false
			return nil
		}
	}
	return apperrors.NewNotFoundError("resource not found")
}

func (s *stubResourceRepo) List(ctx context.Context, filter repositories.ResourceFilter) ([]*entities.Resource, error) {
	return s.resources, nil
}

type stubConstraintRepo struct {
	latest  *entities.ClinicalConstraints
	created []*entities.ClinicalConstraints
}

func (s *stubConstraintRepo) Create(ctx context.Context, constraints *entities.ClinicalConstraints) error {
	s.created = append(s.created, constraints)
	s.latest = constraints
	return nil
}

func (s *stubConstraintRepo) GetByID(ctx context.Context, id string) (*entities.ClinicalConstraints, error) {
	if s.latest != nil && s.latest.ID == id {
		return s.latest, nil
	}
	return nil, apperrors.NewNotFoundError("constraints not found")
}

func (s *stubConstraintRepo) GetLatestByPatient(ctx context.Context, patientID string) (*entities.ClinicalConstraints, error) {
	if s.latest == nil || s.latest.PatientID != patientID {
		return nil, apperrors.NewNotFoundError("no clinical constraints on file")
	}
	return s.latest, nil
}

type stubAssessmentRepo struct {
	latest  *entities.PatientAssessment
	created []*entities.PatientAssessment
}

func (s *stubAssessmentRepo) Create(ctx context.Context, assessment *entities.PatientAssessment) error {
	s.created = append(s.created, assessment)
	s.latest = assessment
	return nil
}

func (s *stubAssessmentRepo) GetByID(ctx context.Context, id string) (*entities.PatientAssessment, error) {
	if s.latest != nil && s.latest.ID == id {
		return s.latest, nil
	}
	return nil, apperrors.NewNotFoundError("assessment not found")
}

func (s *stubAssessmentRepo) GetLatestByPatient(ctx context.Context, patientID string) (*entities.PatientAssessment, error) {
	if s.latest == nil || s.latest.PatientID != patientID {
		return nil, apperrors.NewNotFoundError("no assessment on file")
	}
	return s.latest, nil
}

type stubRecommendationRepo struct {
	runs      [][]*entities.Recommendation
	responses map[string]entities.PatientResponse
}

func (s *stubRecommendationRepo) CreateRun(ctx context.Context, recommendations []*entities.Recommendation) error {
	s.runs = append(s.runs, recommendations)
	return nil
}

func (s *stubRecommendationRepo) GetByID(ctx context.Context, id string) (*entities.Recommendation, error) {
	for _, run := range s.runs {
		for _, rec := range run {
			if rec.ID == id {
				return rec, nil
			}
		}
	}
	return nil, apperrors.NewNotFoundError("recommendation not found")
}

func (s *stubRecommendationRepo) ListLatestByPatient(ctx context.Context, patientID string) ([]*entities.Recommendation, error) {
	if len(s.runs) == 0 {
		return []*entities.Recommendation{}, nil
	}
	return s.runs[len(s.runs)-1], nil
}

func (s *stubRecommendationRepo) RecordResponse(ctx context.Context, id string, response entities.PatientResponse, respondedAt time.Time) error {
	if s.responses == nil {
		s.responses = make(map[string]entities.PatientResponse)
	}
	s.responses[id] = response
	return nil
}
