package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tastebox/backend/internal/middleware"
	"github.com/tastebox/backend/internal/service"
	"github.com/tastebox/backend/internal/types"
)

// ImportHandler drives the extraction pipeline: a source page goes in, a
// preview comes back, and a confirmed preview becomes a stored recipe.
type ImportHandler struct {
	importer         *service.Importer
	recipeService    *service.RecipeService
	nutritionService *service.NutritionService
	authService      *service.AuthService
	redis            *redis.Client
}

func NewImportHandler(importer *service.Importer, recipeService *service.RecipeService, nutritionService *service.NutritionService, authService *service.AuthService, redisClient *redis.Client) *ImportHandler {
	return &ImportHandler{
		importer:         importer,
		recipeService:    recipeService,
		nutritionService: nutritionService,
		authService:      authService,
		redis:            redisClient,
	}
}

func (h *ImportHandler) RegisterRoutes(router *gin.RouterGroup) {
	imports := router.Group("/import", middleware.AuthMiddleware(h.authService))
	if h.redis != nil {
		limiter := middleware.NewImportRateLimiter(h.redis)
		imports.Use(limiter.RateLimitMiddleware())
	}
	{
		imports.POST("", h.ImportFromURL)
		imports.POST("/html", h.ImportFromHTML)
		imports.POST("/confirm", h.ConfirmImport)
	}
}

func (h *ImportHandler) ImportFromURL(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req types.ImportURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must be an absolute http or https URL"})
		return
	}

	if h.importer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "import is not available"})
		return
	}

	preview, err := h.importer.ImportFromURL(c.Request.Context(), userID, req.URL)
	if err != nil {
		h.importError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": preview, "preview": true})
}

func (h *ImportHandler) ImportFromHTML(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req types.ImportHTMLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.importer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "import is not available"})
		return
	}

	preview, err := h.importer.ImportFromHTML(c.Request.Context(), userID, req.HTML, req.URL, req.Title)
	if err != nil {
		h.importError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": preview, "preview": true})
}

func (h *ImportHandler) ConfirmImport(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req types.ConfirmImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.importer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "import is not available"})
		return
	}

	preview, err := h.importer.GetPreview(c.Request.Context(), userID, req.PreviewID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "preview not found or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load preview"})
		return
	}

	recipe := preview.ToRecipe(userID)
	if h.nutritionService != nil {
		h.nutritionService.FillNutrition(c.Request.Context(), recipe)
	}

	if err := h.recipeService.Create(c.Request.Context(), recipe, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}

	if err := h.importer.DeletePreview(c.Request.Context(), preview.ID); err != nil {
		// The preview expires on its own; confirmation already succeeded.
		_ = err
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "recipe": recipe})
}

// importError maps pipeline failures to statuses. Every expected failure
// mode reads as "no recipe could be extracted" so callers get one retryable
// outcome; only unexpected errors surface as 500.
func (h *ImportHandler) importError(c *gin.Context, err error) {
	var (
		fetchErr      *service.FetchError
		llmErr        *service.LLMError
		parseErr      *service.ParseError
		validationErr *service.ValidationError
	)
	switch {
	case errors.As(err, &fetchErr), errors.As(err, &llmErr), errors.As(err, &parseErr):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "no recipe could be extracted"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusNotFound, gin.H{
			"success":    false,
			"error":      "no recipe could be extracted",
			"violations": validationErr.Violations,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "import failed"})
	}
}
