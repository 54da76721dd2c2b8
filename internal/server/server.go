package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tastebox/backend/config"
	"github.com/tastebox/backend/internal/api"
	"github.com/tastebox/backend/internal/middleware"
)

// Server wraps the HTTP server and its routes.
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New builds a server with all routes registered.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())

	api.SetupAPI(router, db, redisClient, cfg)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Start blocks serving HTTP until the server is shut down.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
