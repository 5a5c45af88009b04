package entities

import "time"

// RecommendationEventType classifies recommendation bus events.
type RecommendationEventType string

const (
	EventRunCompleted     RecommendationEventType = "run_completed"
	EventResponseRecorded RecommendationEventType = "response_recorded"
)

// RecommendationEvent is published on the event bus whenever a matching
// run completes or a patient responds, so downstream consumers (patient
// UI refresh, analytics) can react without polling.
type RecommendationEvent struct {
	ID          string                  `json:"id"`
	Type        RecommendationEventType `json:"type"`
	PatientID   string                  `json:"patient_id"`
	RunID       string                  `json:"run_id,omitempty"`
	ResourceIDs []string                `json:"resource_ids,omitempty"`
	Response    PatientResponse         `json:"response,omitempty"`
	OccurredAt  time.Time               `json:"occurred_at"`
}
