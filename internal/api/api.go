package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tastebox/backend/config"
	"github.com/tastebox/backend/internal/service"
)

// SetupAPI wires services and handlers onto the /api/v1 group.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(db, cfg.JWTSecret)
		profileService := service.NewProfileService(db)
		recipeService := service.NewRecipeService(db)
		pdfService := service.NewPDFService()

		llmClient, err := service.NewLLMClient(cfg)
		if err != nil {
			log.Printf("[API] LLM client unavailable: %v", err)
		}

		var blobStore service.BlobStore
		if s3Config, err := config.NewS3Config(context.Background(), cfg); err != nil {
			log.Printf("[API] S3 unavailable, images will not be stored: %v", err)
		} else {
			blobStore = s3Config
		}
		imageService := service.NewImageService(blobStore)

		var nutritionService *service.NutritionService
		var importer *service.Importer
		if llmClient != nil {
			previewStore := service.NewRedisPreviewStore(redisClient)
			nutritionService = service.NewNutritionService(llmClient)
			importer = service.NewImporter(service.NewFetcher(), llmClient, imageService, previewStore)
		}

		authHandler := NewAuthHandler(authService)
		profileHandler := NewProfileHandler(profileService, authService, imageService)
		recipeHandler := NewRecipeHandler(recipeService, authService, nutritionService, pdfService)
		importHandler := NewImportHandler(importer, recipeService, nutritionService, authService, redisClient)

		authHandler.RegisterRoutes(v1)
		profileHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
		importHandler.RegisterRoutes(v1)

		v1.GET("/health", HealthCheck)
	}
}

// HealthCheck reports process liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
