package validation_test

import (
	"testing"

	"github.com/havenlink/communitymatch/internal/api/validation"
	apperrors "github.com/havenlink/communitymatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConstraintsPayload(t *testing.T) {
	t.Run("accepts a complete payload", func(t *testing.T) {
		payload := []byte(`{
			"patient_id": "patient-1",
			"primary_diagnosis": "social_anxiety",
			"age_group": "adult",
			"treatment_phase": "maintenance",
			"approved_tiers": ["lifestyle"],
			"treatment_goals": ["social_connection"],
			"contraindicated_environments": ["alcohol", "crowded"]
		}`)
		assert.NoError(t, validation.ValidateConstraintsPayload(payload))
	})

	t.Run("rejects an empty approved tier list", func(t *testing.T) {
		payload := []byte(`{
			"patient_id": "patient-1",
			"primary_diagnosis": "ptsd",
			"age_group": "adult",
			"approved_tiers": []
		}`)
		err := validation.ValidateConstraintsPayload(payload)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		payload := []byte(`{
			"patient_id": "patient-1",
			"primary_diagnosis": "ptsd",
			"age_group": "adult",
			"approved_tiers": ["clinical"],
			"favorite_color": "blue"
		}`)
		assert.Error(t, validation.ValidateConstraintsPayload(payload))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		assert.Error(t, validation.ValidateConstraintsPayload([]byte(`{"patient_id":`)))
	})
}

func TestValidateAssessmentPayload(t *testing.T) {
	valid := `{
		"patient_id": "patient-1",
		"availability": {"weekday_evenings": true, "weekends": false},
		"transport_access": "public_transit",
		"cost_constraint": "free_only",
		"energy_pattern": "evening",
		"preferred_group_size": "small",
		"preferred_interaction": "side_by_side",
		"interest_categories": ["art", "nature"]
	}`

	t.Run("accepts a complete payload", func(t *testing.T) {
		assert.NoError(t, validation.ValidateAssessmentPayload([]byte(valid)))
	})

	t.Run("rejects an unknown enum value", func(t *testing.T) {
		payload := []byte(`{
			"patient_id": "patient-1",
			"availability": {},
			"transport_access": "teleport",
			"cost_constraint": "free_only"
		}`)
		err := validation.ValidateAssessmentPayload(payload)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects a negative travel radius", func(t *testing.T) {
		payload := []byte(`{
			"patient_id": "patient-1",
			"availability": {},
			"transport_access": "own_vehicle",
			"cost_constraint": "any",
			"max_travel_miles": -3
		}`)
		assert.Error(t, validation.ValidateAssessmentPayload(payload))
	})
}
