package search

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
	tsclient "github.com/havenlink/communitymatch/internal/infrastructure/clients/typesense"
	"github.com/sony/gobreaker"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

// TypesenseAdapter implements resource keyword search using Typesense.
// Calls go through a circuit breaker so a flapping search cluster
// degrades admin search instead of taking catalog writes down with it.
type TypesenseAdapter struct {
	client  *tsclient.Client
	breaker *gobreaker.CircuitBreaker
}

// Ensure TypesenseAdapter implements ResourceSearchRepository
var _ repositories.ResourceSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter.
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	settings := gobreaker.Settings{
		Name:        "typesense",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	}

	return &TypesenseAdapter{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// InitSchema ensures the resources collection exists.
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.ResourcesCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: tsclient.ResourcesCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "tier", Type: "string", Facet: pointer.True()},
			{Name: "keywords", Type: "string[]"},
			{Name: "atmosphere_tags", Type: "string[]"},
			{Name: "is_active", Type: "bool"},
			{Name: "verified", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes a resource.
func (a *TypesenseAdapter) Index(ctx context.Context, resource *entities.Resource) error {
	document := map[string]interface{}{
		"id":              resource.ID,
		"name":            resource.Name,
		"description":     resource.Description,
		"tier":            string(resource.Tier),
		"keywords":        stringSlice(resource.Keywords),
		"atmosphere_tags": stringSlice(resource.AtmosphereTags),
		"is_active":       resource.IsActive,
		"verified":        resource.Verified,
		"created_at":      resource.CreatedAt.Unix(),
	}

	_, err := a.breaker.Execute(func() (interface{}, error) {
		return a.client.Client().Collection(tsclient.ResourcesCollection).Documents().Upsert(ctx, document)
	})
	if err != nil {
		return fmt.Errorf("failed to index resource: %w", err)
	}

	return nil
}

// Delete removes a resource from the index.
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.breaker.Execute(func() (interface{}, error) {
		return a.client.Client().Collection(tsclient.ResourcesCollection).Document(id).Delete(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to delete resource from index: %w", err)
	}
	return nil
}

// Search runs a keyword query over names, keywords and atmosphere tags.
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Resource, error) {
	query := params.Query
	if query == "" {
		query = "*"
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filters := []string{"is_active:=true"}
	if params.Tier != "" {
		filters = append(filters, fmt.Sprintf("tier:=%s", params.Tier))
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name,keywords,atmosphere_tags,description"),
		FilterBy: pointer.String(strings.Join(filters, " && ")),
		Page:     pointer.Int(params.Offset/limit + 1),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.breaker.Execute(func() (interface{}, error) {
		return a.client.Client().Collection(tsclient.ResourcesCollection).Documents().Search(ctx, searchParams)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search resources: %w", err)
	}

	searchResult := result.(*api.SearchResult)
	resources := []*entities.Resource{}
	if searchResult.Hits == nil {
		return resources, nil
	}

	for _, hit := range *searchResult.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		// Typesense holds a search projection, not the full record.
		// Callers that need the complete resource re-read it from the
		// repository by ID.
		resource := &entities.Resource{}
		if val, ok := doc["id"].(string); ok {
			resource.ID = val
		}
		if val, ok := doc["name"].(string); ok {
			resource.Name = val
		}
		if val, ok := doc["description"].(string); ok {
			resource.Description = val
		}
		if val, ok := doc["tier"].(string); ok {
			resource.Tier = entities.Tier(val)
		}
		if val, ok := doc["is_active"].(bool); ok {
			resource.IsActive = val
		}
		if val, ok := doc["verified"].(bool); ok {
			resource.Verified = val
		}
		resource.Keywords = stringValues(doc["keywords"])
		resource.AtmosphereTags = stringValues(doc["atmosphere_tags"])

		resources = append(resources, resource)
	}

	return resources, nil
}

func stringSlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func stringValues(raw interface{}) []string {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
