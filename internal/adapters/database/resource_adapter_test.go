package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/havenlink/communitymatch/internal/adapters/database"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
	"github.com/havenlink/communitymatch/internal/infrastructure/clients/postgres"
	apperrors "github.com/havenlink/communitymatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockAdapter(t *testing.T) (repositories.ResourceRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return database.NewResourceAdapter(postgres.NewClientFromDB(db)), mock
}

func resourceRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "name", "description", "tier", "diagnoses_served", "age_groups",
		"group_size", "interaction_style", "commitment",
		"noise_level", "light_level", "crowding_level", "atmosphere_tags",
		"schedule_days", "time_slots", "session_minutes",
		"transit_accessible", "wheelchair_access",
		"cost_type", "cost_amount", "accepted_payers",
		"intake_type", "intake_details", "alcohol_served", "facilitator_level",
		"keywords", "verified", "is_active", "created_at", "updated_at",
	}).AddRow(
		"res-1", "Riverside Art Collective", "Weekly watercolor group", "lifestyle",
		"{general_population}", "{adult}",
		"small", "side_by_side", "weekly",
		"quiet", "normal", "spacious", "{calm,creative}",
		"{tuesday,saturday}", "{morning,afternoon}", 90,
		true, false,
		"free", nil, "{}",
		"drop_in", "", false, "peer",
		"{art,painting}", true, true, now, now,
	)
}

func TestResourceAdapter_GetByID(t *testing.T) {
	t.Run("returns a full resource", func(t *testing.T) {
		adapter, mock := setupMockAdapter(t)

		mock.ExpectQuery(`SELECT .+ FROM "resources"`).WillReturnRows(resourceRows())

		resource, err := adapter.GetByID(context.Background(), "res-1")
		require.NoError(t, err)
		assert.Equal(t, "res-1", resource.ID)
		assert.Equal(t, entities.TierLifestyle, resource.Tier)
		assert.Equal(t, []string{"general_population"}, resource.DiagnosesServed)
		assert.Equal(t, entities.GroupSizeSmall, resource.GroupSize)
		assert.Equal(t, entities.NoiseQuiet, resource.Sensory.Noise)
		assert.Equal(t, []entities.TimeOfDay{entities.TimeMorning, entities.TimeAfternoon}, resource.Schedule.TimeSlots)
		assert.Equal(t, entities.CostFree, resource.Cost.Type)
		assert.Nil(t, resource.Cost.Amount)
		assert.True(t, resource.ServesGeneralPopulation())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing rows to a not found error", func(t *testing.T) {
		adapter, mock := setupMockAdapter(t)

		mock.ExpectQuery(`SELECT .+ FROM "resources"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		resource, err := adapter.GetByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Nil(t, resource)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestResourceAdapter_Create(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectExec(`INSERT INTO "resources"`).WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now().UTC()
	resource := &entities.Resource{
		ID:              "res-2",
		Name:            "Harbor Peer Circle",
		Tier:            entities.TierStructuredCommunity,
		DiagnosesServed: []string{"depression"},
		AgeGroups:       []string{"adult"},
		GroupSize:       entities.GroupSizeSmall,
		Cost:            entities.Cost{Type: entities.CostFree},
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	require.NoError(t, adapter.Create(context.Background(), resource))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceAdapter_Delete(t *testing.T) {
	t.Run("soft-deletes an existing resource", func(t *testing.T) {
		adapter, mock := setupMockAdapter(t)

		mock.ExpectExec(`UPDATE "resources" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, adapter.Delete(context.Background(), "res-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports not found when nothing matched", func(t *testing.T) {
		adapter, mock := setupMockAdapter(t)

		mock.ExpectExec(`UPDATE "resources" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := adapter.Delete(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestResourceAdapter_List(t *testing.T) {
	adapter, mock := setupMockAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "resources"`).WillReturnRows(resourceRows())

	active := true
	resources, err := adapter.List(context.Background(), repositories.ResourceFilter{
		Tier:     entities.TierLifestyle,
		IsActive: &active,
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "Riverside Art Collective", resources[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
