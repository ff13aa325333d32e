// Package api assembles the HTTP server: public catalog routes, the
// password-gated admin surface and the sitemap.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/movieshub/movieshub/internal/api/middleware"
	"github.com/movieshub/movieshub/internal/auth"
	"github.com/movieshub/movieshub/internal/catalog"
	"github.com/movieshub/movieshub/internal/config"
	"github.com/movieshub/movieshub/internal/importer"
	"github.com/movieshub/movieshub/internal/metadata"
	"github.com/movieshub/movieshub/internal/metadata/tmdb"
	"github.com/movieshub/movieshub/internal/progress"
	"github.com/movieshub/movieshub/internal/sitemap"
	"github.com/movieshub/movieshub/internal/websocket"
)

// Server handles HTTP requests for the MoviesHub API.
type Server struct {
	echo      *echo.Echo
	db        *sql.DB
	hub       *websocket.Hub
	logger    zerolog.Logger
	cfg       *config.Config
	startedAt time.Time

	// Services
	catalogService  *catalog.Service
	tmdbClient      *tmdb.Client
	authService     *auth.Service
	importService   *importer.Service
	sitemapService  *sitemap.Service
	progressManager *progress.Manager
}

// NewServer creates a new API server instance.
func NewServer(db *sql.DB, hub *websocket.Hub, cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		db:        db,
		hub:       hub,
		logger:    logger,
		cfg:       cfg,
		startedAt: time.Now(),
	}

	s.catalogService = catalog.NewService(db, logger)
	s.tmdbClient = tmdb.NewClient(cfg.TMDB, logger)
	s.progressManager = progress.NewManager(hub, logger)

	authService, err := auth.NewService(db, cfg.Auth.AdminPassword, cfg.Auth.JWTSecret)
	if err != nil {
		return nil, err
	}
	s.authService = authService

	s.importService = importer.NewService(
		s.tmdbClient,
		s.catalogService,
		s.progressManager,
		logger,
		time.Duration(cfg.Import.DelayMS)*time.Millisecond,
	)

	s.sitemapService = sitemap.NewService(s.catalogService, sitemap.Config{
		BaseURL:      cfg.Sitemap.BaseURL,
		CacheTTL:     time.Duration(cfg.Sitemap.CacheTTLMin) * time.Minute,
		RefreshEvery: time.Duration(cfg.Sitemap.RefreshEveryMin) * time.Minute,
	}, logger)

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.echo.Use(echomw.Recover())
	s.echo.Use(echomw.RequestID())
	s.echo.Use(echomw.BodyLimit("2M"))
	s.echo.Use(middleware.SecurityHeaders())

	s.echo.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	s.echo.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogMethod:   true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Err(v.Error).
					Msg("request error")
			} else {
				s.logger.Info().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Msg("request")
			}
			return nil
		},
	}))

	s.echo.Use(echomw.GzipWithConfig(echomw.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return c.Request().Header.Get("Upgrade") == "websocket"
		},
	}))
}

func (s *Server) setupRoutes() {
	s.echo.GET("/healthz", s.healthCheck)
	s.echo.GET("/sitemap.xml", s.sitemapService.Handle)

	api := s.echo.Group("/api/v1")
	admin := api.Group("", auth.RequireAdmin(s.authService))

	authHandlers := auth.NewHandlers(s.authService, s.logger)
	authHandlers.RegisterRoutes(api)

	catalogHandlers := catalog.NewHandlers(s.catalogService)
	catalogHandlers.RegisterRoutes(api, admin)

	metadataHandlers := metadata.NewHandlers(s.tmdbClient)
	metadataHandlers.RegisterRoutes(admin)

	importHandlers := importer.NewHandlers(s.importService)
	importHandlers.RegisterRoutes(admin)

	admin.GET("/ws", s.hub.HandleWebSocket)
	admin.GET("/status", s.getStatus)
}

// Start begins listening for HTTP requests and starts the background sitemap
// refresh.
func (s *Server) Start(address string) error {
	s.logger.Info().Str("address", address).Msg("starting HTTP server")

	if err := s.sitemapService.StartScheduler(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to start sitemap scheduler")
	}

	return s.echo.Start(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	s.importService.CancelRun()
	s.sitemapService.StopScheduler()

	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getStatus(c echo.Context) error {
	_, total, err := s.catalogService.List(c.Request().Context(), catalog.ListOptions{PageSize: 1})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"version":    config.Version,
		"startTime":  s.startedAt.Format(time.RFC3339),
		"movieCount": total,
		"clients":    s.hub.ClientCount(),
	})
}
