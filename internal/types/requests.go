package types

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Alias *string `json:"alias"`
}

// UpdateTTSSettingsRequest carries text-to-speech playback preferences.
type UpdateTTSSettingsRequest struct {
	Voice    *string  `json:"voice"`
	Rate     *float64 `json:"rate"`
	Pitch    *float64 `json:"pitch"`
	Autoplay *bool    `json:"autoplay"`
}

// ImportURLRequest is the payload for POST /import.
type ImportURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// ImportHTMLRequest is the payload for POST /import/html, used by the
// browser extension and bookmarklet which supply the page HTML directly.
type ImportHTMLRequest struct {
	HTML  string `json:"html" binding:"required"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ConfirmImportRequest is the payload for POST /import/confirm.
type ConfirmImportRequest struct {
	PreviewID string `json:"preview_id" binding:"required"`
}
