package services

import (
	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// applyHardFilter keeps only resources the clinician has cleared. It is
// an order-preserving pass/fail gate applied before any patient
// preference is considered. It never errors: malformed constraints
// (e.g. an empty approved-tier set) simply pass nothing through.
func (s *MatchingService) applyHardFilter(resources []*entities.Resource, constraints *entities.ClinicalConstraints) []*entities.Resource {
	filtered := make([]*entities.Resource, 0, len(resources))
	for _, r := range resources {
		if s.passesClinicalGate(r, constraints) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (s *MatchingService) passesClinicalGate(r *entities.Resource, c *entities.ClinicalConstraints) bool {
	if !c.TierApproved(r.Tier) {
		return false
	}

	// Only the primary diagnosis is checked; comorbidities are captured
	// in the record but not enforced here.
	if !r.ServesGeneralPopulation() && !containsString(r.DiagnosesServed, c.PrimaryDiagnosis) {
		return false
	}

	if !containsString(r.AgeGroups, c.AgeGroup) {
		return false
	}

	for _, tag := range c.ContraindicatedEnvironments {
		if tag == entities.ContraindicationAlcohol {
			if r.AlcoholServed {
				return false
			}
			continue
		}
		// Exact, case-sensitive tag membership, not substring.
		if containsString(r.AtmosphereTags, tag) {
			return false
		}
	}

	return true
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
