package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tastebox/backend/internal/middleware"
	"github.com/tastebox/backend/internal/models"
	"github.com/tastebox/backend/internal/service"
)

type RecipeHandler struct {
	recipeService    *service.RecipeService
	authService      *service.AuthService
	nutritionService *service.NutritionService
	pdfService       *service.PDFService
}

func NewRecipeHandler(recipeService *service.RecipeService, authService *service.AuthService, nutritionService *service.NutritionService, pdfService *service.PDFService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:    recipeService,
		authService:      authService,
		nutritionService: nutritionService,
		pdfService:       pdfService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes", middleware.AuthMiddleware(h.authService))
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.GET("/:id/export.pdf", h.ExportRecipePDF)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var (
		recipes []models.Recipe
		err     error
	)
	if query := c.Query("q"); query != "" {
		recipes, err = h.recipeService.Search(c.Request.Context(), userID, query)
	} else {
		recipes, err = h.recipeService.List(c.Request.Context(), userID, "", c.Query("tag"))
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), recipeID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if recipe.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	if h.nutritionService != nil {
		h.nutritionService.FillNutrition(c.Request.Context(), &recipe)
	}

	if err := h.recipeService.Create(c.Request.Context(), &recipe, userID); err != nil {
		var valErr *service.ValidationError
		if errors.As(err, &valErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe", "violations": valErr.Violations})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recipe.ID = recipeID

	if err := h.recipeService.Update(c.Request.Context(), &recipe, userID); err != nil {
		var valErr *service.ValidationError
		if errors.As(err, &valErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe", "violations": valErr.Violations})
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), recipeID, userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

func (h *RecipeHandler) ExportRecipePDF(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), recipeID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	pdfBytes, err := h.pdfService.RenderRecipe(recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render pdf"})
		return
	}

	filename := fmt.Sprintf("attachment; filename=\"%s.pdf\"", recipe.ID)
	c.Header("Content-Disposition", filename)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
