package services

import (
	"strings"

	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// Per-dimension match predicates shared by the compatibility scorer and
// the rationale generator. Both consume the same checks so the numeric
// score and the explanation can never drift apart.

var groupSizeRank = map[entities.GroupSize]int{
	entities.GroupSizeIndividual: 0,
	entities.GroupSizeSmall:      1,
	entities.GroupSizeMedium:     2,
	entities.GroupSizeLarge:      3,
}

// groupSizeDistance returns the ordinal distance between two group
// sizes, or -1 when either value is unrecognized.
func groupSizeDistance(a, b entities.GroupSize) int {
	ra, okA := groupSizeRank[a]
	rb, okB := groupSizeRank[b]
	if !okA || !okB {
		return -1
	}
	if ra > rb {
		return ra - rb
	}
	return rb - ra
}

// groupSizeMatches reports an exact group-size match on recognized values.
func groupSizeMatches(resource, preferred entities.GroupSize) bool {
	return groupSizeDistance(resource, preferred) == 0
}

func isInPersonStyle(s entities.InteractionStyle) bool {
	return s == entities.InteractionFaceToFace || s == entities.InteractionSideBySide
}

func isOnlineStyle(s entities.InteractionStyle) bool {
	return s == entities.InteractionOnlineSync || s == entities.InteractionOnlineAsync
}

// sameStyleFamily reports whether both styles are in-person or both online.
func sameStyleFamily(a, b entities.InteractionStyle) bool {
	return (isInPersonStyle(a) && isInPersonStyle(b)) || (isOnlineStyle(a) && isOnlineStyle(b))
}

// interestTerms builds the patient's case-folded interest vocabulary
// from interest categories and past-interest terms.
func interestTerms(assessment *entities.PatientAssessment) []string {
	terms := make([]string, 0, len(assessment.InterestCategories)+len(assessment.PastInterests))
	seen := make(map[string]struct{})
	for _, group := range [][]string{assessment.InterestCategories, assessment.PastInterests} {
		for _, raw := range group {
			term := strings.ToLower(strings.TrimSpace(raw))
			if term == "" {
				continue
			}
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			terms = append(terms, term)
		}
	}
	return terms
}

// matchedKeywords returns the resource keywords, in catalog order, that
// fuzzy-match any patient interest term. Matching is case-insensitive
// substring containment in either direction.
func matchedKeywords(resource *entities.Resource, terms []string) []string {
	var matched []string
	for _, raw := range resource.Keywords {
		keyword := strings.ToLower(strings.TrimSpace(raw))
		if keyword == "" {
			continue
		}
		for _, term := range terms {
			if strings.Contains(keyword, term) || strings.Contains(term, keyword) {
				matched = append(matched, keyword)
				break
			}
		}
	}
	return matched
}

// energySlotMatch reports whether the resource offers a time slot equal
// to the patient's energy pattern literal. A "varies" pattern never
// matches a slot; the scorer handles it as a flat sub-score instead.
func energySlotMatch(resource *entities.Resource, pattern entities.EnergyPattern) bool {
	return resource.Schedule.OffersSlot(entities.TimeOfDay(pattern))
}
