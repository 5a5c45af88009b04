package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
	"github.com/havenlink/communitymatch/internal/infrastructure/clients/postgres"
	apperrors "github.com/havenlink/communitymatch/pkg/errors"
	"github.com/lib/pq"
)

var resourceColumns = []interface{}{
	"id", "name", "description", "tier", "diagnoses_served", "age_groups",
	"group_size", "interaction_style", "commitment",
	"noise_level", "light_level", "crowding_level", "atmosphere_tags",
	"schedule_days", "time_slots", "session_minutes",
	"transit_accessible", "wheelchair_access",
	"cost_type", "cost_amount", "accepted_payers",
	"intake_type", "intake_details", "alcohol_served", "facilitator_level",
	"keywords", "verified", "is_active", "created_at", "updated_at",
}

// ResourceAdapter implements the ResourceRepository interface.
type ResourceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewResourceAdapter creates a new resource adapter.
func NewResourceAdapter(client *postgres.Client) repositories.ResourceRepository {
	return &ResourceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new resource.
func (a *ResourceAdapter) Create(ctx context.Context, resource *entities.Resource) error {
	query, args, err := a.db.Insert("resources").Rows(resourceRecord(resource)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build resource insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create resource", err)
	}

	return nil
}

// GetByID retrieves a resource by ID.
func (a *ResourceAdapter) GetByID(ctx context.Context, id string) (*entities.Resource, error) {
	query, args, err := a.db.Select(resourceColumns...).
		From("resources").
		Where(goqu.Ex{"id": id, "is_active": true}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build resource query", err)
	}

	resource, err := scanResource(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("resource with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get resource", err)
	}

	return resource, nil
}

// Update updates a resource.
func (a *ResourceAdapter) Update(ctx context.Context, resource *entities.Resource) error {
	resource.UpdatedAt = time.Now().UTC()

	record := resourceRecord(resource)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("resources").
		Set(record).
		Where(goqu.Ex{"id": resource.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build resource update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update resource", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("resource with id %s not found", resource.ID))
	}

	return nil
}

// Delete soft-deletes a resource.
func (a *ResourceAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Update("resources").
		Set(goqu.Record{"is_active": false, "updated_at": time.Now().UTC()}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build resource delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete resource", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("resource with id %s not found", id))
	}

	return nil
}

// List retrieves resources with filters, preserving a deterministic
// order so matching runs see a stable catalog snapshot.
func (a *ResourceAdapter) List(ctx context.Context, filter repositories.ResourceFilter) ([]*entities.Resource, error) {
	ds := a.db.Select(resourceColumns...).From("resources")

	where := goqu.Ex{}
	if filter.Tier != "" {
		where["tier"] = string(filter.Tier)
	}
	if filter.Verified != nil {
		where["verified"] = *filter.Verified
	}
	if filter.IsActive != nil {
		where["is_active"] = *filter.IsActive
	}
	if len(where) > 0 {
		ds = ds.Where(where)
	}

	ds = ds.Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build resource list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list resources", err)
	}
	defer rows.Close()

	resources := []*entities.Resource{}
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan resource", err)
		}
		resources = append(resources, resource)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating resources", err)
	}

	return resources, nil
}

func resourceRecord(r *entities.Resource) goqu.Record {
	var amount sql.NullFloat64
	if r.Cost.Amount != nil {
		amount = sql.NullFloat64{Float64: *r.Cost.Amount, Valid: true}
	}

	return goqu.Record{
		"id":                 r.ID,
		"name":               r.Name,
		"description":        r.Description,
		"tier":               string(r.Tier),
		"diagnoses_served":   pq.Array(r.DiagnosesServed),
		"age_groups":         pq.Array(r.AgeGroups),
		"group_size":         string(r.GroupSize),
		"interaction_style":  string(r.InteractionStyle),
		"commitment":         string(r.Commitment),
		"noise_level":        string(r.Sensory.Noise),
		"light_level":        string(r.Sensory.Lighting),
		"crowding_level":     string(r.Sensory.Crowding),
		"atmosphere_tags":    pq.Array(r.AtmosphereTags),
		"schedule_days":      pq.Array(r.Schedule.Days),
		"time_slots":         pq.Array(timeSlotStrings(r.Schedule.TimeSlots)),
		"session_minutes":    r.Schedule.SessionMinutes,
		"transit_accessible": r.TransitAccessible,
		"wheelchair_access":  r.WheelchairAccess,
		"cost_type":          string(r.Cost.Type),
		"cost_amount":        amount,
		"accepted_payers":    pq.Array(r.Cost.AcceptedPayers),
		"intake_type":        r.Intake.Type,
		"intake_details":     sql.NullString{String: r.Intake.Details, Valid: r.Intake.Details != ""},
		"alcohol_served":     r.AlcoholServed,
		"facilitator_level":  string(r.FacilitatorLevel),
		"keywords":           pq.Array(r.Keywords),
		"verified":           r.Verified,
		"is_active":          r.IsActive,
		"created_at":         r.CreatedAt,
		"updated_at":         r.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResource(row rowScanner) (*entities.Resource, error) {
	resource := &entities.Resource{}
	var (
		diagnoses, ageGroups, atmosphereTags pq.StringArray
		scheduleDays, timeSlots              pq.StringArray
		acceptedPayers, keywords             pq.StringArray
		tier, groupSize, interaction         string
		commitment, noise, light, crowding   string
		costType, facilitator                string
		costAmount                           sql.NullFloat64
		intakeDetails                        sql.NullString
	)

	err := row.Scan(
		&resource.ID,
		&resource.Name,
		&resource.Description,
		&tier,
		&diagnoses,
		&ageGroups,
		&groupSize,
		&interaction,
		&commitment,
		&noise,
		&light,
		&crowding,
		&atmosphereTags,
		&scheduleDays,
		&timeSlots,
		&resource.Schedule.SessionMinutes,
		&resource.TransitAccessible,
		&resource.WheelchairAccess,
		&costType,
		&costAmount,
		&acceptedPayers,
		&resource.Intake.Type,
		&intakeDetails,
		&resource.AlcoholServed,
		&facilitator,
		&keywords,
		&resource.Verified,
		&resource.IsActive,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	resource.Tier = entities.Tier(tier)
	resource.DiagnosesServed = diagnoses
	resource.AgeGroups = ageGroups
	resource.GroupSize = entities.GroupSize(groupSize)
	resource.InteractionStyle = entities.InteractionStyle(interaction)
	resource.Commitment = entities.CommitmentLevel(commitment)
	resource.Sensory = entities.SensoryProfile{
		Noise:    entities.NoiseLevel(noise),
		Lighting: entities.LightLevel(light),
		Crowding: entities.CrowdingLevel(crowding),
	}
	resource.AtmosphereTags = atmosphereTags
	resource.Schedule.Days = scheduleDays
	resource.Schedule.TimeSlots = timeSlotValues(timeSlots)
	resource.Cost.Type = entities.CostType(costType)
	if costAmount.Valid {
		resource.Cost.Amount = &costAmount.Float64
	}
	resource.Cost.AcceptedPayers = acceptedPayers
	resource.Intake.Details = intakeDetails.String
	resource.FacilitatorLevel = entities.FacilitatorLevel(facilitator)
	resource.Keywords = keywords

	return resource, nil
}

func timeSlotStrings(slots []entities.TimeOfDay) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = string(s)
	}
	return out
}

func timeSlotValues(slots []string) []entities.TimeOfDay {
	out := make([]entities.TimeOfDay, len(slots))
	for i, s := range slots {
		out[i] = entities.TimeOfDay(s)
	}
	return out
}
