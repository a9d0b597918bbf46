package server

import (
	"fmt"

	"github.com/Gkemhcs/janus-backend/internal/auth"
	"github.com/Gkemhcs/janus-backend/internal/auth/jwt"
	"github.com/Gkemhcs/janus-backend/internal/config"
	"github.com/Gkemhcs/janus-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server for the Janus backend API.
type Server struct {
	cfg    *config.Config
	log    *logrus.Logger
	engine *gin.Engine
}

// SetupRoutes registers all API routes and middleware for the server.
// This function centralizes route registration for maintainability.
func (s *Server) SetupRoutes(authHandler *auth.AuthHandler, jwter *jwt.Manager) {
	v1 := s.engine.Group("/api/v1")

	jwtMiddleware := middleware.JWTAuthMiddleware(jwter)
	auth.RegisterAuthRoutes(authHandler, v1, jwtMiddleware)
}

// routes registers health check and other non-API routes.
func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Janus backend is healthy",
		})
	})
}

// New creates a new Server instance with the given config and logger.
func New(cfg *config.Config, log *logrus.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		cfg:    cfg,
		log:    log,
		engine: engine,
	}
}

// Start runs the HTTP server on the configured port.
func (s *Server) Start() error {
	s.routes()
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	s.log.Infof("starting server on %s", addr)
	return s.engine.Run(addr)
}
