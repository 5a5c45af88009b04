// Package validation holds the JSON Schemas for intake payloads. The
// schemas reject malformed shapes before handlers decode into entities;
// entity Validate methods then enforce the domain invariants.
package validation

import (
	"fmt"
	"strings"

	apperrors "github.com/havenlink/communitymatch/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

var tierValues = []interface{}{"clinical", "structured_community", "lifestyle"}

var constraintsSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"patient_id", "primary_diagnosis", "age_group", "approved_tiers"},
	"properties": map[string]interface{}{
		"patient_id":        map[string]interface{}{"type": "string", "minLength": 1},
		"clinician_id":      map[string]interface{}{"type": "string"},
		"primary_diagnosis": map[string]interface{}{"type": "string", "minLength": 1},
		"comorbidities": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"age_group": map[string]interface{}{"type": "string", "minLength": 1},
		"treatment_phase": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"acute", "stabilizing", "maintenance"},
		},
		"approved_tiers": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]interface{}{"type": "string", "enum": tierValues},
		},
		"treatment_goals": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"contraindicated_environments": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"diagnosis_extension": map[string]interface{}{"type": "object"},
		"notes":               map[string]interface{}{"type": "string"},
	},
	"additionalProperties": false,
}

var assessmentSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"patient_id", "availability", "transport_access", "cost_constraint"},
	"properties": map[string]interface{}{
		"patient_id": map[string]interface{}{"type": "string", "minLength": 1},
		"availability": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"weekday_mornings":   map[string]interface{}{"type": "boolean"},
				"weekday_afternoons": map[string]interface{}{"type": "boolean"},
				"weekday_evenings":   map[string]interface{}{"type": "boolean"},
				"weekends":           map[string]interface{}{"type": "boolean"},
			},
			"additionalProperties": false,
		},
		"transport_access": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"own_vehicle", "public_transit", "rideshare", "walking_only"},
		},
		"max_travel_miles": map[string]interface{}{"type": "number", "minimum": 0},
		"cost_constraint": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"free_only", "low_cost", "insurance_covered", "any"},
		},
		"energy_pattern": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"morning", "afternoon", "evening", "varies"},
		},
		"preferred_group_size": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"individual", "small", "medium", "large"},
		},
		"preferred_interaction": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"face_to_face", "side_by_side", "online_sync", "online_async"},
		},
		"preferred_commitment": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"drop_in", "weekly", "structured_program"},
		},
		"interest_categories": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"past_interests": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"diagnosis_extension": map[string]interface{}{"type": "object"},
	},
	"additionalProperties": false,
}

// ValidateConstraintsPayload validates a raw clinical constraints payload.
func ValidateConstraintsPayload(payload []byte) error {
	return validate(constraintsSchema, payload)
}

// ValidateAssessmentPayload validates a raw patient assessment payload.
func ValidateAssessmentPayload(payload []byte) error {
	return validate(assessmentSchema, payload)
}

func validate(schema map[string]interface{}, payload []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("invalid JSON payload: %v", err))
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return apperrors.NewValidationError(strings.Join(errs, "; "))
	}

	return nil
}
