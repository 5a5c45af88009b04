package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
)

// ResourceService handles admin curation of the resource catalog.
// Writes go to the database first; the search index follows eventually.
type ResourceService struct {
	repo       repositories.ResourceRepository
	searchRepo repositories.ResourceSearchRepository
}

// NewResourceService creates a new resource service.
func NewResourceService(repo repositories.ResourceRepository, searchRepo repositories.ResourceSearchRepository) *ResourceService {
	return &ResourceService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// Create validates, stores and indexes a new resource.
func (s *ResourceService) Create(ctx context.Context, resource *entities.Resource) error {
	if resource.ID == "" {
		resource.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = now
	}
	resource.UpdatedAt = now
	resource.IsActive = true

	if err := resource.Validate(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, resource); err != nil {
			// Index lag is acceptable; the database is the source of truth.
			log.Printf("Warning: failed to index resource %s: %v", resource.ID, err)
		}
	}

	return nil
}

// GetByID retrieves a resource by ID.
func (s *ResourceService) GetByID(ctx context.Context, id string) (*entities.Resource, error) {
	return s.repo.GetByID(ctx, id)
}

// Update validates and updates a resource, then refreshes the index.
func (s *ResourceService) Update(ctx context.Context, resource *entities.Resource) error {
	if err := resource.Validate(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, resource); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, resource); err != nil {
			log.Printf("Warning: failed to refresh index for resource %s: %v", resource.ID, err)
		}
	}

	return nil
}

// Delete soft-deletes a resource and removes it from the index.
func (s *ResourceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			log.Printf("Warning: failed to remove resource %s from index: %v", id, err)
		}
	}

	return nil
}

// List retrieves resources with filters.
func (s *ResourceService) List(ctx context.Context, filter repositories.ResourceFilter) ([]*entities.Resource, error) {
	return s.repo.List(ctx, filter)
}

// Search runs a keyword query through the search index, falling back to
// a database listing when no index is configured.
func (s *ResourceService) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Resource, error) {
	if s.searchRepo != nil {
		return s.searchRepo.Search(ctx, params)
	}
	return s.repo.List(ctx, repositories.ResourceFilter{
		Tier:   params.Tier,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
}
