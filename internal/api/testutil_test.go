package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tastebox/backend/internal/models"
	"github.com/tastebox/backend/internal/service"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	llm    *stubCompleter
}

type stubCompleter struct {
	completion string
	err        error
}

func (c *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.completion, nil
}

type passthroughImages struct{}

func (passthroughImages) RetrieveRecipeImages(ctx context.Context, candidates []models.RecipeImage) []models.RecipeImage {
	return candidates
}

type memPreviewStore struct {
	mu       sync.Mutex
	previews map[string]service.RecipePreview
}

func (s *memPreviewStore) Save(ctx context.Context, preview *service.RecipePreview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previews[preview.ID] = *preview
	return nil
}

func (s *memPreviewStore) Get(ctx context.Context, id string) (*service.RecipePreview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.previews[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &p, nil
}

func (s *memPreviewStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.previews, id)
	return nil
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.TTSSettings{}, &models.Recipe{}))

	llm := &stubCompleter{}
	authService := service.NewAuthService(db, "test-secret")
	recipeService := service.NewRecipeService(db)
	profileService := service.NewProfileService(db)
	importer := service.NewImporter(service.NewFetcher(), llm, passthroughImages{},
		&memPreviewStore{previews: make(map[string]service.RecipePreview)})

	router := gin.New()
	v1 := router.Group("/api/v1")

	NewAuthHandler(authService).RegisterRoutes(v1)
	NewProfileHandler(profileService, authService, service.NewImageService(nil)).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, authService, nil, service.NewPDFService()).RegisterRoutes(v1)
	NewImportHandler(importer, recipeService, nil, authService, nil).RegisterRoutes(v1)
	v1.GET("/health", HealthCheck)

	return &testServer{router: router, db: db, llm: llm}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) registerUser(t *testing.T, email string) string {
	t.Helper()

	w := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"name":     "Test User",
		"password": "secreta123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
