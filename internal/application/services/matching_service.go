package services

import (
	"sort"

	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// DefaultMatchLimit caps the shortlist when the caller does not ask for
// a specific count.
const DefaultMatchLimit = 5

// MatchingService runs the deterministic matching pipeline: hard filter,
// logistics filter, compatibility scoring and rationale generation. It
// holds only fixed weights, so one instance is safe to share across
// requests; every call is independent and side-effect-free.
type MatchingService struct {
	wGroupSize   float64
	wInteraction float64
	wInterests   float64
	wSensory     float64
	wEnergy      float64
}

// NewMatchingService creates a matching service with the fixed
// production weights (summing to 1.0).
func NewMatchingService() *MatchingService {
	return &MatchingService{
		wGroupSize:   0.25,
		wInteraction: 0.25,
		wInterests:   0.20,
		wSensory:     0.15,
		wEnergy:      0.15,
	}
}

// Match runs the full pipeline over a catalog snapshot and returns the
// ranked, explained shortlist. Resources flow strictly left to right:
// hard filter, logistics filter, score+rationale, stable sort by
// descending score, truncate to limit. A non-positive limit falls back
// to DefaultMatchLimit. An empty result is valid, not an error.
func (s *MatchingService) Match(resources []*entities.Resource, constraints *entities.ClinicalConstraints, assessment *entities.PatientAssessment, limit int) []entities.MatchedResource {
	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	survivors := s.applyHardFilter(resources, constraints)
	survivors = s.applyLogisticsFilter(survivors, assessment)

	matched := make([]entities.MatchedResource, len(survivors))
	for i, r := range survivors {
		score, _ := s.Score(r, assessment)
		matched[i] = entities.MatchedResource{
			Resource:  r,
			Score:     score,
			Rationale: s.Explain(r, assessment, constraints),
		}
	}

	// Stable sort keeps input-relative order for equal scores.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}
