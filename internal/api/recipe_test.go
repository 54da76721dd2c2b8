package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebox/backend/internal/models"
)

func testRecipeBody(title string) gin.H {
	return gin.H{
		"title":       title,
		"description": "Descripción de prueba",
		"prep_time":   15,
		"servings":    4,
		"difficulty":  models.DifficultyEasy,
		"ingredients": []gin.H{
			{"name": "huevos", "amount": "6", "order": 1},
		},
		"instructions": []gin.H{
			{"step": 1, "description": "Batir los huevos."},
		},
		"tags": []string{"prueba"},
	}
}

func createRecipe(t *testing.T, ts *testServer, token, title string) models.Recipe {
	t.Helper()

	w := ts.request(t, http.MethodPost, "/api/v1/recipes", token, testRecipeBody(title))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe models.Recipe
	decodeJSON(t, w, &recipe)
	require.NotEmpty(t, recipe.ID)
	return recipe
}

func TestRecipeCRUDRoundTrip(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "ana@example.com")

	created := createRecipe(t, ts, token, "Tortilla")

	// Read it back
	w := ts.request(t, http.MethodGet, "/api/v1/recipes/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Recipe
	decodeJSON(t, w, &got)
	assert.Equal(t, "Tortilla", got.Title)

	// Update
	body := testRecipeBody("Tortilla renombrada")
	w = ts.request(t, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Delete, then the recipe is gone from reads and listings
	w = ts.request(t, http.MethodDelete, "/api/v1/recipes/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.request(t, http.MethodGet, "/api/v1/recipes/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.request(t, http.MethodGet, "/api/v1/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	decodeJSON(t, w, &listing)
	assert.Empty(t, listing.Recipes)
}

func TestRecipeCreateRequiresTitle(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "ana@example.com")

	body := testRecipeBody("")
	w := ts.request(t, http.MethodPost, "/api/v1/recipes", token, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeCreateRejectsTooManyImages(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "ana@example.com")

	body := testRecipeBody("Con demasiadas fotos")
	images := make([]gin.H, 5)
	for i := range images {
		images[i] = gin.H{"url": fmt.Sprintf("https://example.com/%d.jpg", i+1), "order": i + 1}
	}
	body["images"] = images

	w := ts.request(t, http.MethodPost, "/api/v1/recipes", token, body)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "violations")

	// Nothing reached persistence.
	w = ts.request(t, http.MethodGet, "/api/v1/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	decodeJSON(t, w, &listing)
	assert.Empty(t, listing.Recipes)
}

func TestRecipeUpdateRejectsInvalidDifficulty(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "ana@example.com")
	created := createRecipe(t, ts, token, "Tortilla")

	body := testRecipeBody("Tortilla")
	body["difficulty"] = "Imposible"
	w := ts.request(t, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestRecipeCrossUserAccessIsNotFound(t *testing.T) {
	ts := setupTestServer(t)
	ownerToken := ts.registerUser(t, "ana@example.com")
	otherToken := ts.registerUser(t, "eva@example.com")

	created := createRecipe(t, ts, ownerToken, "Privada")

	w := ts.request(t, http.MethodGet, "/api/v1/recipes/"+created.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.request(t, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), otherToken, testRecipeBody("Robada"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.request(t, http.MethodDelete, "/api/v1/recipes/"+created.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Still intact for the owner
	w = ts.request(t, http.MethodGet, "/api/v1/recipes/"+created.ID.String(), ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecipeListQueryAndTag(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "ana@example.com")

	createRecipe(t, ts, token, "Gazpacho andaluz")
	createRecipe(t, ts, token, "Paella valenciana")

	w := ts.request(t, http.MethodGet, "/api/v1/recipes?q=gazpacho", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	decodeJSON(t, w, &listing)
	require.Len(t, listing.Recipes, 1)
	assert.Equal(t, "Gazpacho andaluz", listing.Recipes[0].Title)

	w = ts.request(t, http.MethodGet, "/api/v1/recipes?tag=prueba", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &listing)
	assert.Len(t, listing.Recipes, 2)
}

func TestRecipeInvalidIDIsBadRequest(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "ana@example.com")

	w := ts.request(t, http.MethodGet, "/api/v1/recipes/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeExportPDF(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerUser(t, "ana@example.com")

	created := createRecipe(t, ts, token, "Tortilla")

	w := ts.request(t, http.MethodGet, "/api/v1/recipes/"+created.ID.String()+"/export.pdf", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}
