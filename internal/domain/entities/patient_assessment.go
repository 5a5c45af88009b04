package entities

import (
	"encoding/json"
	"time"
)

// TransportAccess is how a patient can get to a resource.
type TransportAccess string

const (
	TransportOwnVehicle    TransportAccess = "own_vehicle"
	TransportPublicTransit TransportAccess = "public_transit"
	TransportRideshare     TransportAccess = "rideshare"
	TransportWalkingOnly   TransportAccess = "walking_only"
)

// CostConstraint is the patient's affordability ceiling.
type CostConstraint string

const (
	CostConstraintFreeOnly  CostConstraint = "free_only"
	CostConstraintLowCost   CostConstraint = "low_cost"
	CostConstraintInsurance CostConstraint = "insurance_covered"
	CostConstraintAny       CostConstraint = "any"
)

// EnergyPattern is when in the day the patient has the most capacity.
// The morning/afternoon/evening literals line up with TimeOfDay slots.
type EnergyPattern string

const (
	EnergyMorning   EnergyPattern = "morning"
	EnergyAfternoon EnergyPattern = "afternoon"
	EnergyEvening   EnergyPattern = "evening"
	EnergyVaries    EnergyPattern = "varies"
)

// Availability is the patient's self-reported weekly availability.
type Availability struct {
	WeekdayMornings   bool `json:"weekday_mornings" db:"weekday_mornings"`
	WeekdayAfternoons bool `json:"weekday_afternoons" db:"weekday_afternoons"`
	WeekdayEvenings   bool `json:"weekday_evenings" db:"weekday_evenings"`
	Weekends          bool `json:"weekends" db:"weekends"`
}

// PatientAssessment is one patient's self-reported preference profile.
type PatientAssessment struct {
	ID                   string           `json:"id" db:"id"`
	PatientID            string           `json:"patient_id" db:"patient_id"`
	Availability         Availability     `json:"availability" db:"-"`
	TransportAccess      TransportAccess  `json:"transport_access" db:"transport_access"`
	MaxTravelMiles       float64          `json:"max_travel_miles,omitempty" db:"max_travel_miles"`
	CostConstraint       CostConstraint   `json:"cost_constraint" db:"cost_constraint"`
	EnergyPattern        EnergyPattern    `json:"energy_pattern" db:"energy_pattern"`
	PreferredGroupSize   GroupSize        `json:"preferred_group_size" db:"preferred_group_size"`
	PreferredInteraction InteractionStyle `json:"preferred_interaction" db:"preferred_interaction"`
	PreferredCommitment  CommitmentLevel  `json:"preferred_commitment" db:"preferred_commitment"`
	InterestCategories   []string         `json:"interest_categories,omitempty" db:"-"`
	PastInterests        []string         `json:"past_interests,omitempty" db:"-"`
	DiagnosisExtension   json.RawMessage  `json:"diagnosis_extension,omitempty" db:"diagnosis_extension"`
	CreatedAt            time.Time        `json:"created_at" db:"created_at"`
}

// Validate enforces the record invariants at construction time.
func (a *PatientAssessment) Validate() error {
	if a.PatientID == "" {
		return errInvalid("patient id is required")
	}
	if a.TransportAccess == "" {
		return errInvalid("transport access is required")
	}
	if a.CostConstraint == "" {
		return errInvalid("cost constraint is required")
	}
	return nil
}
