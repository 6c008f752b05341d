package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/cipherloom-go/internal/auth"
	"github.com/cipherloom-go/internal/cache"
	"github.com/cipherloom-go/internal/config"
	"github.com/cipherloom-go/internal/handler"
)

// Server represents the HTTP server
type Server struct {
	cfg        *config.Config
	router     *gin.Engine
	results    *cache.Cache
	httpServer *http.Server
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		router: gin.New(),
	}

	if cfg.Cache.Enable {
		s.results = cache.NewCache(time.Duration(cfg.Cache.Expiration)*time.Minute, cfg.Cache.MaxEntries)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(TraceMiddleware())
	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(MetricsMiddleware())
	r.Use(CORSMiddleware(s.cfg.Server.CORSOrigins))
	if s.cfg.Server.EnableGzip {
		r.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	r.GET("/health", gin.WrapF(HealthHandler))
	r.GET("/ready", gin.WrapF(ReadyHandler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cipherHandler := handler.NewCipherHandler(s.cfg, s.results)

	api := r.Group("/api/v1")
	api.Use(BodyLimitMiddleware(s.cfg.Server.MaxBodyBytes))
	if s.cfg.IsAuthEnabled() {
		jwtAuth := auth.NewJWTAuth(s.cfg.Auth.JWTSecret, time.Duration(s.cfg.Auth.JWTExpire)*time.Hour)
		api.Use(AuthMiddleware(jwtAuth))
		log.Info().Msg("Bearer token auth enabled for /api/v1")
	}
	{
		api.GET("/ciphers", cipherHandler.ListCiphers)
		api.POST("/encrypt", cipherHandler.Encrypt)
		api.POST("/decrypt", cipherHandler.Decrypt)
		api.POST("/batch", cipherHandler.Batch)
	}
}

// Handler returns the root handler, wrapped for h2c when enabled
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router

	// Enable h2c (HTTP/2 cleartext) if configured
	if s.cfg.IsH2CEnabled() {
		h2s := &http2.Server{
			MaxConcurrentStreams: 1000,
			IdleTimeout:          120 * time.Second,
		}
		h = h2c.NewHandler(s.router, h2s)
	}
	return h
}

// Start listens on the configured address and blocks until the server stops
func (s *Server) Start() error {
	addr := s.cfg.GetHTTPAddr()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info().
		Str("addr", addr).
		Bool("h2c", s.cfg.IsH2CEnabled()).
		Bool("cache", s.results != nil).
		Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down server...")

	var lastErr error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			lastErr = err
		}
	}
	if s.results != nil {
		s.results.Close()
	}
	return lastErr
}
