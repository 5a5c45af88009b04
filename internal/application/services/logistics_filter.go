package services

import (
	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// applyLogisticsFilter keeps only resources the patient can practically
// attend: schedule, transport and cost. Order-preserving, never errors.
func (s *MatchingService) applyLogisticsFilter(resources []*entities.Resource, assessment *entities.PatientAssessment) []*entities.Resource {
	filtered := make([]*entities.Resource, 0, len(resources))
	for _, r := range resources {
		if s.scheduleCompatible(r, assessment) &&
			s.transportCompatible(r, assessment) &&
			s.costCompatible(r, assessment) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// scheduleCompatible checks the patient's weekly availability against
// the resource's time slots. Weekend availability is a universal
// override: once the patient marks weekends free, every resource passes
// regardless of its actual slots. That asymmetry is intentional current
// behavior, kept pending a product decision.
func (s *MatchingService) scheduleCompatible(r *entities.Resource, a *entities.PatientAssessment) bool {
	if a.Availability.Weekends {
		return true
	}
	for _, slot := range r.Schedule.TimeSlots {
		switch slot {
		case entities.TimeMorning:
			if a.Availability.WeekdayMornings {
				return true
			}
		case entities.TimeAfternoon:
			if a.Availability.WeekdayAfternoons {
				return true
			}
		case entities.TimeEvening:
			if a.Availability.WeekdayEvenings {
				return true
			}
		}
	}
	return false
}

// transportCompatible gates walking-only patients on transit access.
// Every other transport category passes; MaxTravelMiles is carried on
// the assessment but deliberately not consulted.
func (s *MatchingService) transportCompatible(r *entities.Resource, a *entities.PatientAssessment) bool {
	if a.TransportAccess == entities.TransportWalkingOnly {
		return r.TransitAccessible
	}
	return true
}

// costCompatible rejects non-free resources for free-only patients.
// Every other cost constraint passes.
func (s *MatchingService) costCompatible(r *entities.Resource, a *entities.PatientAssessment) bool {
	if a.CostConstraint == entities.CostConstraintFreeOnly {
		return r.Cost.Type == entities.CostFree
	}
	return true
}
