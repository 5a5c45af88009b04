package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/providers"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
)

// CachedResourceAdapter wraps ResourceAdapter with caching. Single
// resources and catalog pages are cached; writes invalidate both so a
// matching run never ranks a stale catalog for longer than one TTL.
type CachedResourceAdapter struct {
	adapter repositories.ResourceRepository
	cache   providers.CacheProvider
}

// NewCachedResourceAdapter creates a new cached resource adapter.
func NewCachedResourceAdapter(adapter repositories.ResourceRepository, cache providers.CacheProvider) repositories.ResourceRepository {
	return &CachedResourceAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	resourceByIDTTL = 300 // 5 minutes for single resource
	resourceListTTL = 180 // 3 minutes for catalog pages
)

func resourceCacheKey(id string) string {
	return fmt.Sprintf("resource:%s", id)
}

func resourceListCacheKey(filter repositories.ResourceFilter) string {
	verified := "any"
	if filter.Verified != nil {
		verified = fmt.Sprintf("%t", *filter.Verified)
	}
	active := "any"
	if filter.IsActive != nil {
		active = fmt.Sprintf("%t", *filter.IsActive)
	}
	return fmt.Sprintf("resources:list:%s:%s:%s:%d:%d", filter.Tier, verified, active, filter.Limit, filter.Offset)
}

// GetByID retrieves a resource by ID with caching.
func (a *CachedResourceAdapter) GetByID(ctx context.Context, id string) (*entities.Resource, error) {
	cacheKey := resourceCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var resource entities.Resource
		if err := json.Unmarshal(cached, &resource); err == nil {
			return &resource, nil
		}
		log.Printf("Failed to unmarshal cached resource %s: %v", id, err)
	}

	resource, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(resource); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, resourceByIDTTL); err != nil {
				log.Printf("Failed to cache resource %s: %v", id, err)
			}
		}
	}()

	return resource, nil
}

// List retrieves a catalog page with caching.
func (a *CachedResourceAdapter) List(ctx context.Context, filter repositories.ResourceFilter) ([]*entities.Resource, error) {
	cacheKey := resourceListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var resources []*entities.Resource
		if err := json.Unmarshal(cached, &resources); err == nil {
			return resources, nil
		}
		log.Printf("Failed to unmarshal cached resource list: %v", err)
	}

	resources, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(resources); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, resourceListTTL); err != nil {
				log.Printf("Failed to cache resource list: %v", err)
			}
		}
	}()

	return resources, nil
}

// Create creates a resource and invalidates catalog page caches.
func (a *CachedResourceAdapter) Create(ctx context.Context, resource *entities.Resource) error {
	if err := a.adapter.Create(ctx, resource); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.DeletePattern(bgCtx, "resources:list:*"); err != nil {
			log.Printf("Failed to invalidate resource list cache: %v", err)
		}
	}()

	return nil
}

// Update updates a resource and invalidates its caches.
func (a *CachedResourceAdapter) Update(ctx context.Context, resource *entities.Resource) error {
	if err := a.adapter.Update(ctx, resource); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, resourceCacheKey(resource.ID)); err != nil {
			log.Printf("Failed to invalidate resource cache %s: %v", resource.ID, err)
		}
		if err := a.cache.DeletePattern(bgCtx, "resources:list:*"); err != nil {
			log.Printf("Failed to invalidate resource list cache: %v", err)
		}
	}()

	return nil
}

// Delete deletes a resource and invalidates its caches.
func (a *CachedResourceAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, resourceCacheKey(id)); err != nil {
			log.Printf("Failed to invalidate resource cache %s: %v", id, err)
		}
		if err := a.cache.DeletePattern(bgCtx, "resources:list:*"); err != nil {
			log.Printf("Failed to invalidate resource list cache: %v", err)
		}
	}()

	return nil
}
