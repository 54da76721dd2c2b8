package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tastebox/backend/internal/middleware"
	"github.com/tastebox/backend/internal/service"
	"github.com/tastebox/backend/internal/types"
)

// maxProfilePhotoSize caps uploaded photos at 5 MiB.
const maxProfilePhotoSize = 5 << 20

type ProfileHandler struct {
	profileService *service.ProfileService
	authService    *service.AuthService
	imageService   *service.ImageService
}

func NewProfileHandler(profileService *service.ProfileService, authService *service.AuthService, imageService *service.ImageService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
		imageService:   imageService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile", middleware.AuthMiddleware(h.authService))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/photo", h.UploadPhoto)
		profile.GET("/tts", h.GetTTSSettings)
		profile.PUT("/tts", h.UpdateTTSSettings)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req.Name, req.Alias)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxProfilePhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds 5MB limit"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxProfilePhotoSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read photo"})
		return
	}

	photoURL, err := h.imageService.UploadProfilePhoto(c.Request.Context(), userID, data, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
		return
	}

	if err := h.profileService.SetPhotoURL(c.Request.Context(), userID, photoURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": photoURL})
}

func (h *ProfileHandler) GetTTSSettings(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	settings, err := h.profileService.GetTTSSettings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *ProfileHandler) UpdateTTSSettings(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req types.UpdateTTSSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.profileService.UpdateTTSSettings(c.Request.Context(), userID, req.Voice, req.Rate, req.Pitch, req.Autoplay)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}
