package services

import (
	"fmt"
	"strings"

	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// Factor names in the order they may appear in a rationale.
const (
	factorGroupSize        = "Group size"
	factorInteractionStyle = "Interaction style"
	factorSchedule         = "Schedule"
	factorInterests        = "Interests"
)

// Explain builds the human-readable rationale for a match. It consumes
// the same dimension predicates as the scorer, appending factors in a
// fixed order only when the underlying condition holds.
func (s *MatchingService) Explain(resource *entities.Resource, assessment *entities.PatientAssessment, constraints *entities.ClinicalConstraints) entities.MatchRationale {
	var factors []entities.MatchFactor

	if groupSizeMatches(resource.GroupSize, assessment.PreferredGroupSize) {
		factors = append(factors, entities.MatchFactor{
			Name:        factorGroupSize,
			Polarity:    entities.PolarityPositive,
			Explanation: fmt.Sprintf("Offers %s sessions, matching your preference.", string(resource.GroupSize)),
		})
	}

	if resource.InteractionStyle == assessment.PreferredInteraction {
		explanation := "Participants engage the way you prefer."
		if resource.InteractionStyle == entities.InteractionSideBySide {
			explanation = "Activity-focused format that reduces conversation pressure."
		}
		factors = append(factors, entities.MatchFactor{
			Name:        factorInteractionStyle,
			Polarity:    entities.PolarityPositive,
			Explanation: explanation,
		})
	}

	if energySlotMatch(resource, assessment.EnergyPattern) {
		factors = append(factors, entities.MatchFactor{
			Name:        factorSchedule,
			Polarity:    entities.PolarityPositive,
			Explanation: fmt.Sprintf("Meets in the %s, when your energy is highest.", string(assessment.EnergyPattern)),
		})
	}

	if matches := matchedKeywords(resource, interestTerms(assessment)); len(matches) > 0 {
		named := matches
		if len(named) > 2 {
			named = named[:2]
		}
		factors = append(factors, entities.MatchFactor{
			Name:        factorInterests,
			Polarity:    entities.PolarityPositive,
			Explanation: fmt.Sprintf("Involves %s, which you named as interests.", strings.Join(named, ", ")),
		})
	}

	return entities.MatchRationale{
		Summary: s.summarize(resource, factors),
		Factors: factors,
	}
}

// summarize synthesizes one sentence naming the tier and the positive
// factor names, or a generic fallback when nothing stood out.
func (s *MatchingService) summarize(resource *entities.Resource, factors []entities.MatchFactor) string {
	var names []string
	for _, f := range factors {
		if f.Polarity == entities.PolarityPositive {
			names = append(names, strings.ToLower(f.Name))
		}
	}
	if len(names) == 0 {
		return "This resource meets your basic clinical and practical requirements."
	}
	return fmt.Sprintf("This %s resource is a strong fit on %s.", resource.Tier.Label(), strings.Join(names, ", "))
}
