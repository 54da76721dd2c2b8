package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebox/backend/internal/models"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields to the user's profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, alias *string) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if alias != nil {
		updates["alias"] = *alias
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *ProfileService) SetPhotoURL(ctx context.Context, userID uuid.UUID, photoURL string) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("photo_url", photoURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTTSSettings returns the user's voice settings, creating defaults on
// first access.
func (s *ProfileService) GetTTSSettings(ctx context.Context, userID uuid.UUID) (*models.TTSSettings, error) {
	var settings models.TTSSettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.TTSSettings{
		ID:     uuid.New(),
		UserID: userID,
		Voice:  models.DefaultTTSVoice,
		Rate:   1.0,
		Pitch:  1.0,
	}
	if err := s.db.WithContext(ctx).Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateTTSSettings applies the non-nil fields to the user's voice settings.
func (s *ProfileService) UpdateTTSSettings(ctx context.Context, userID uuid.UUID, voice *string, rate, pitch *float64, autoplay *bool) (*models.TTSSettings, error) {
	settings, err := s.GetTTSSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if voice != nil {
		settings.Voice = *voice
	}
	if rate != nil {
		settings.Rate = *rate
	}
	if pitch != nil {
		settings.Pitch = *pitch
	}
	if autoplay != nil {
		settings.Autoplay = *autoplay
	}

	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
