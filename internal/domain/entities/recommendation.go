package entities

import (
	"encoding/json"
	"time"
)

// PatientResponse is the patient's asynchronous reaction to a
// recommendation. It is recorded for later analysis but never feeds
// back into scoring.
type PatientResponse string

const (
	ResponseInterested PatientResponse = "interested"
	ResponseDismissed  PatientResponse = "dismissed"
)

// IsValid reports whether the response is a recognized value.
func (r PatientResponse) IsValid() bool {
	return r == ResponseInterested || r == ResponseDismissed
}

// Recommendation is one persisted row of a ranked matching run. A run
// stores the pipeline output so the patient UI can re-read it without
// recomputing, linked to the constraint and assessment records that
// produced it.
type Recommendation struct {
	ID           string          `json:"id" db:"id"`
	RunID        string          `json:"run_id" db:"run_id"`
	PatientID    string          `json:"patient_id" db:"patient_id"`
	ResourceID   string          `json:"resource_id" db:"resource_id"`
	ConstraintID string          `json:"constraint_id" db:"constraint_id"`
	AssessmentID string          `json:"assessment_id" db:"assessment_id"`
	Rank         int             `json:"rank" db:"rank"`
	Score        int             `json:"score" db:"score"`
	Rationale    MatchRationale  `json:"rationale" db:"-"`
	Response     PatientResponse `json:"response,omitempty" db:"response"`
	RespondedAt  *time.Time      `json:"responded_at,omitempty" db:"responded_at"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// RationaleJSON serializes the rationale for storage.
func (r *Recommendation) RationaleJSON() ([]byte, error) {
	return json.Marshal(r.Rationale)
}
