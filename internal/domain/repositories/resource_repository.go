package repositories

import (
	"context"

	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// ResourceRepository defines the interface for catalog data operations.
type ResourceRepository interface {
	// Create creates a new resource
	Create(ctx context.Context, resource *entities.Resource) error

	// GetByID retrieves a resource by ID
	GetByID(ctx context.Context, id string) (*entities.Resource, error)

	// Update updates a resource
	Update(ctx context.Context, resource *entities.Resource) error

	// Delete soft-deletes a resource
	Delete(ctx context.Context, id string) error

	// List retrieves resources with filters. The matching pipeline
	// consumes a List result as its immutable catalog snapshot.
	List(ctx context.Context, filter ResourceFilter) ([]*entities.Resource, error)
}

// ResourceSearchRepository defines keyword search over the catalog
// (backed by Typesense in production).
type ResourceSearchRepository interface {
	// Index indexes a resource
	Index(ctx context.Context, resource *entities.Resource) error

	// Delete removes a resource from the index
	Delete(ctx context.Context, id string) error

	// Search runs a keyword query over names, keywords and atmosphere tags
	Search(ctx context.Context, params SearchParams) ([]*entities.Resource, error)
}

// ResourceFilter defines filters for listing resources.
type ResourceFilter struct {
	Tier     entities.Tier
	Verified *bool
	IsActive *bool
	Limit    int
	Offset   int
}

// SearchParams defines parameters for catalog keyword search.
type SearchParams struct {
	Query  string
	Tier   entities.Tier
	Limit  int
	Offset int
}
