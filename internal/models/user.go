package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Alias        string         `gorm:"size:50" json:"alias,omitempty"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	PhotoURL     string         `gorm:"size:512" json:"photo_url,omitempty"`
}

// DefaultTTSVoice is the voice assigned when a user has no saved settings.
const DefaultTTSVoice = "es-ES-Standard-A"

// TTSSettings holds a user's text-to-speech playback preferences.
type TTSSettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Voice     string    `gorm:"size:100;default:'es-ES-Standard-A'" json:"voice"`
	Rate      float64   `gorm:"default:1.0" json:"rate"`
	Pitch     float64   `gorm:"default:1.0" json:"pitch"`
	Autoplay  bool      `gorm:"default:false" json:"autoplay"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
