package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"menuboard/api/internal/config"
	"menuboard/api/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Server is the JSON API surface over the menu service.
type Server struct {
	cfg      config.ServerConfig
	menu     *service.Menu
	cacheTTL time.Duration
	engine   *gin.Engine
}

func New(cfg config.ServerConfig, menu *service.Menu, cacheTTL time.Duration) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), corsMiddleware())

	s := &Server{
		cfg:      cfg,
		menu:     menu,
		cacheTTL: cacheTTL,
		engine:   engine,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/health", s.Health)
		api.GET("/menu", s.GetMenu)
		api.POST("/menu/refresh", s.RefreshMenu)
		api.GET("/menu/refresh", s.RefreshMenu)
		api.GET("/menu/search", s.SearchMenu)
		api.GET("/menu/specials", s.GetSpecials)
		if s.menu.HistoryEnabled() {
			api.GET("/menu/history", s.GetHistory)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start runs the HTTP server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
