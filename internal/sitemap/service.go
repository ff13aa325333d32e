package sitemap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/movieshub/movieshub/internal/catalog"
)

const cacheKey = "sitemap_xml"

// MovieLister is the catalog surface the sitemap needs.
type MovieLister interface {
	All(ctx context.Context) ([]*catalog.Movie, error)
}

// Config holds sitemap service configuration.
type Config struct {
	BaseURL      string
	CacheTTL     time.Duration
	RefreshEvery time.Duration
}

// Service builds the sitemap on demand and keeps a TTL-cached copy fresh on
// a schedule.
type Service struct {
	movies    MovieLister
	cfg       Config
	cache     *gocache.Cache
	scheduler gocron.Scheduler
	logger    zerolog.Logger
}

// NewService creates a new sitemap service.
func NewService(movies MovieLister, cfg Config, logger zerolog.Logger) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &Service{
		movies: movies,
		cfg:    cfg,
		cache:  gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger: logger.With().Str("component", "sitemap").Logger(),
	}
}

// Get returns the sitemap XML, serving the cached copy when fresh.
func (s *Service) Get(ctx context.Context) (string, error) {
	if xml, found := s.cache.Get(cacheKey); found {
		return xml.(string), nil
	}
	return s.Refresh(ctx)
}

// Refresh rebuilds the sitemap and stores it in the cache.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	movies, err := s.movies.All(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load movies for sitemap: %w", err)
	}

	xml := Build(s.cfg.BaseURL, DefaultStaticRoutes(), movies, time.Now())
	s.cache.Set(cacheKey, xml, gocache.DefaultExpiration)

	s.logger.Debug().Int("movies", len(movies)).Msg("Sitemap rebuilt")
	return xml, nil
}

// StartScheduler begins periodic background refreshes. A RefreshEvery of
// zero disables scheduling.
func (s *Service) StartScheduler() error {
	if s.cfg.RefreshEvery <= 0 {
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create sitemap scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.cfg.RefreshEvery),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := s.Refresh(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Scheduled sitemap refresh failed")
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule sitemap refresh: %w", err)
	}

	scheduler.Start()
	s.scheduler = scheduler
	return nil
}

// StopScheduler shuts down the background refresh job.
func (s *Service) StopScheduler() {
	if s.scheduler != nil {
		_ = s.scheduler.Shutdown()
	}
}

// Handle serves the sitemap.
// GET /sitemap.xml
func (s *Service) Handle(c echo.Context) error {
	xml, err := s.Get(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", []byte(xml))
}
