package entities

import (
	"encoding/json"
	"time"
)

// TreatmentPhase marks where a patient is in their care journey.
type TreatmentPhase string

const (
	PhaseAcute       TreatmentPhase = "acute"
	PhaseStabilizing TreatmentPhase = "stabilizing"
	PhaseMaintenance TreatmentPhase = "maintenance"
)

// ClinicalConstraints are one clinician's guardrails for one patient.
// They gate the catalog before any patient preference is considered.
type ClinicalConstraints struct {
	ID                          string          `json:"id" db:"id"`
	PatientID                   string          `json:"patient_id" db:"patient_id"`
	ClinicianID                 string          `json:"clinician_id,omitempty" db:"clinician_id"`
	PrimaryDiagnosis            string          `json:"primary_diagnosis" db:"primary_diagnosis"`
	Comorbidities               []string        `json:"comorbidities,omitempty" db:"-"`
	AgeGroup                    string          `json:"age_group" db:"age_group"`
	TreatmentPhase              TreatmentPhase  `json:"treatment_phase" db:"treatment_phase"`
	ApprovedTiers               []Tier          `json:"approved_tiers" db:"-"`
	TreatmentGoals              []string        `json:"treatment_goals,omitempty" db:"-"`
	ContraindicatedEnvironments []string        `json:"contraindicated_environments,omitempty" db:"-"`
	DiagnosisExtension          json.RawMessage `json:"diagnosis_extension,omitempty" db:"diagnosis_extension"`
	Notes                       string          `json:"notes,omitempty" db:"notes"`
	CreatedAt                   time.Time       `json:"created_at" db:"created_at"`
}

// TierApproved reports whether the clinician has cleared the given tier.
func (c *ClinicalConstraints) TierApproved(tier Tier) bool {
	for _, t := range c.ApprovedTiers {
		if t == tier {
			return true
		}
	}
	return false
}

// Validate enforces the record invariants at construction time. The
// matching pipeline assumes constraints have already passed this check;
// an empty approved-tier set is structurally valid for the pipeline
// (it simply yields zero matches) but is rejected at intake so the
// clinician is told rather than the patient getting an empty list.
func (c *ClinicalConstraints) Validate() error {
	if c.PatientID == "" {
		return errInvalid("patient id is required")
	}
	if c.PrimaryDiagnosis == "" {
		return errInvalid("primary diagnosis is required")
	}
	if c.AgeGroup == "" {
		return errInvalid("age group is required")
	}
	if len(c.ApprovedTiers) == 0 {
		return errInvalid("at least one approved tier is required")
	}
	for _, t := range c.ApprovedTiers {
		if !t.IsValid() {
			return errInvalid("approved tiers must be a subset of clinical, structured_community, lifestyle")
		}
	}
	return nil
}
