package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/havenlink/communitymatch/internal/api/handlers"
	"github.com/havenlink/communitymatch/internal/application/services"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResourceFixture(repo *stubResourceRepo) *handlers.ResourceHandler {
	return handlers.NewResourceHandler(services.NewResourceService(repo, nil))
}

func TestResourceHandler_CreateResource(t *testing.T) {
	t.Run("creates a valid resource", func(t *testing.T) {
		repo := &stubResourceRepo{}
		handler := newResourceFixture(repo)

		body := `{
			"name": "Riverside Art Collective",
			"tier": "lifestyle",
			"diagnoses_served": ["general_population"],
			"age_groups": ["adult"],
			"group_size": "small",
			"cost": {"type": "free"}
		}`
		req := httptest.NewRequest("POST", "/api/resources", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateResource(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, repo.created, 1)
		created := repo.created[0]
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.IsActive)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("rejects a resource without a tier", func(t *testing.T) {
		repo := &stubResourceRepo{}
		handler := newResourceFixture(repo)

		body := `{"name": "Unclassified Group", "diagnoses_served": ["general_population"], "age_groups": ["adult"]}`
		req := httptest.NewRequest("POST", "/api/resources", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateResource(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, repo.created)
	})
}

func TestResourceHandler_GetResource(t *testing.T) {
	repo := &stubResourceRepo{resources: []*entities.Resource{{ID: "res-1", Name: "Harbor Peer Circle"}}}
	handler := newResourceFixture(repo)

	t.Run("returns an existing resource", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/resources/res-1", nil)
		req.SetPathValue("id", "res-1")
		w := httptest.NewRecorder()

		handler.GetResource(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got entities.Resource
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, "Harbor Peer Circle", got.Name)
	})

	t.Run("404 for a missing resource", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/resources/ghost", nil)
		req.SetPathValue("id", "ghost")
		w := httptest.NewRecorder()

		handler.GetResource(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestResourceHandler_ListResources(t *testing.T) {
	repo := &stubResourceRepo{resources: []*entities.Resource{
		{ID: "res-1", Name: "Harbor Peer Circle"},
		{ID: "res-2", Name: "Evening Walking Group"},
	}}
	handler := newResourceFixture(repo)

	req := httptest.NewRequest("GET", "/api/resources?limit=10", nil)
	w := httptest.NewRecorder()

	handler.ListResources(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
}
