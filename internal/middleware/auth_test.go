package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tastebox/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (v *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func newAuthTestRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
		userID := c.MustGet("user_id").(uuid.UUID)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
	})
	return router
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	userID := uuid.New()
	router := newAuthTestRouter(&stubValidator{claims: &types.TokenClaims{UserID: userID}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := newAuthTestRouter(&stubValidator{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := newAuthTestRouter(&stubValidator{})

	for _, header := range []string{"Basic abc", "Bearer", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := newAuthTestRouter(&stubValidator{err: errors.New("expired")})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
