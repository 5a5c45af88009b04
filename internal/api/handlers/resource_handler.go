package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/havenlink/communitymatch/internal/application/services"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
)

// ResourceHandler handles admin catalog curation requests.
type ResourceHandler struct {
	resourceService *services.ResourceService
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler(resourceService *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

// CreateResource handles POST /api/resources
func (h *ResourceHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var resource entities.Resource
	if err := json.NewDecoder(r.Body).Decode(&resource); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.resourceService.Create(r.Context(), &resource); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, resource)
}

// GetResource handles GET /api/resources/{id}
func (h *ResourceHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	if resourceID == "" {
		respondWithError(w, http.StatusBadRequest, "resource ID is required")
		return
	}

	resource, err := h.resourceService.GetByID(r.Context(), resourceID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resource)
}

// UpdateResource handles PUT /api/resources/{id}
func (h *ResourceHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	if resourceID == "" {
		respondWithError(w, http.StatusBadRequest, "resource ID is required")
		return
	}

	var resource entities.Resource
	if err := json.NewDecoder(r.Body).Decode(&resource); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resource.ID = resourceID

	if err := h.resourceService.Update(r.Context(), &resource); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resource)
}

// DeleteResource handles DELETE /api/resources/{id}
func (h *ResourceHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	if resourceID == "" {
		respondWithError(w, http.StatusBadRequest, "resource ID is required")
		return
	}

	if err := h.resourceService.Delete(r.Context(), resourceID); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListResources handles GET /api/resources
func (h *ResourceHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ResourceFilter{
		Tier:   entities.Tier(r.URL.Query().Get("tier")),
		Limit:  parseIntParam(r, "limit", 30),
		Offset: parseIntParam(r, "offset", 0),
	}
	if v := r.URL.Query().Get("verified"); v != "" {
		verified := v == "true"
		filter.Verified = &verified
	}
	if v := r.URL.Query().Get("active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	resources, err := h.resourceService.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"resources": resources,
		"count":     len(resources),
	})
}

// SearchResources handles GET /api/resources/search
func (h *ResourceHandler) SearchResources(w http.ResponseWriter, r *http.Request) {
	params := repositories.SearchParams{
		Query:  r.URL.Query().Get("q"),
		Tier:   entities.Tier(r.URL.Query().Get("tier")),
		Limit:  parseIntParam(r, "limit", 20),
		Offset: parseIntParam(r, "offset", 0),
	}

	resources, err := h.resourceService.Search(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"resources": resources,
		"count":     len(resources),
	})
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
