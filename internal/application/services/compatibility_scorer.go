package services

import (
	"math"

	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// Score computes the 0-100 compatibility score between one resource and
// one assessment as a weighted sum of five normalized sub-scores.
// Deterministic and pure; unrecognized enum values degrade to the
// worst-case branch of their sub-score instead of erroring.
func (s *MatchingService) Score(resource *entities.Resource, assessment *entities.PatientAssessment) (int, map[string]float64) {
	groupSize := s.groupSizeScore(resource, assessment) * s.wGroupSize
	interaction := s.interactionScore(resource, assessment) * s.wInteraction
	interests := s.interestScore(resource, assessment) * s.wInterests
	sensory := s.sensoryScore(resource) * s.wSensory
	energy := s.energyScore(resource, assessment) * s.wEnergy

	// Summed in a fixed order: float addition is not associative, and
	// several weighted combinations land close enough to a rounding
	// boundary that summation order changes the rounded score.
	total := groupSize + interaction + interests + sensory + energy

	breakdown := map[string]float64{
		"group_size":  groupSize,
		"interaction": interaction,
		"interests":   interests,
		"sensory":     sensory,
		"energy":      energy,
	}

	return int(math.Round(total * 100)), breakdown
}

// groupSizeScore decays with ordinal distance over
// individual < small < medium < large.
func (s *MatchingService) groupSizeScore(r *entities.Resource, a *entities.PatientAssessment) float64 {
	switch groupSizeDistance(r.GroupSize, a.PreferredGroupSize) {
	case 0:
		return 1.0
	case 1:
		return 0.6
	case 2:
		return 0.3
	default:
		return 0.1
	}
}

// interactionScore rewards exact style matches, then same-family
// matches (both in-person or both online), and penalizes cross-family.
func (s *MatchingService) interactionScore(r *entities.Resource, a *entities.PatientAssessment) float64 {
	if r.InteractionStyle == a.PreferredInteraction {
		return 1.0
	}
	if sameStyleFamily(r.InteractionStyle, a.PreferredInteraction) {
		return 0.7
	}
	return 0.3
}

// interestScore counts resource keywords fuzzy-matching the patient's
// interest vocabulary.
func (s *MatchingService) interestScore(r *entities.Resource, a *entities.PatientAssessment) float64 {
	switch n := len(matchedKeywords(r, interestTerms(a))); {
	case n >= 3:
		return 1.0
	case n == 2:
		return 0.7
	case n == 1:
		return 0.4
	default:
		return 0.1
	}
}

// sensoryScore encodes a fixed clinical prior that calmer environments
// are generally preferable. It is not personalized per patient; the
// diagnosis-specific extension fields exist as the natural hook for
// that but are not consulted by scoring.
func (s *MatchingService) sensoryScore(r *entities.Resource) float64 {
	score := 0.5
	if r.Sensory.Noise == entities.NoiseQuiet {
		score += 0.2
	}
	if r.Sensory.Crowding == entities.CrowdingSpacious {
		score += 0.2
	}
	if r.Sensory.Lighting == entities.LightNormal {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// energyScore compares the patient's energy pattern to the resource's
// slots. A "varies" pattern scores a flat 0.7.
func (s *MatchingService) energyScore(r *entities.Resource, a *entities.PatientAssessment) float64 {
	if a.EnergyPattern == entities.EnergyVaries {
		return 0.7
	}
	if energySlotMatch(r, a.EnergyPattern) {
		return 1.0
	}
	return 0.4
}
