// Package metadata exposes the TMDB gateway over HTTP for the admin panel,
// standing in for the original serverless proxy functions.
package metadata

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/movieshub/movieshub/internal/metadata/tmdb"
)

// Handlers provides HTTP handlers for metadata lookups.
type Handlers struct {
	client *tmdb.Client
}

// NewHandlers creates new metadata handlers.
func NewHandlers(client *tmdb.Client) *Handlers {
	return &Handlers{client: client}
}

// RegisterRoutes registers the metadata routes on the admin group.
func (h *Handlers) RegisterRoutes(admin *echo.Group) {
	admin.GET("/metadata/search", h.Search)
	admin.GET("/metadata/discover", h.Discover)
	admin.GET("/metadata/popular", h.Popular)
	admin.GET("/metadata/:tmdbId", h.Details)
}

// Search proxies free-text search to the provider.
// GET /api/v1/metadata/search?q=...&type=movie|tv|multi
func (h *Handlers) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter is required")
	}

	mediaType := tmdb.MediaType(c.QueryParam("type"))
	if mediaType == "" {
		mediaType = tmdb.MediaTypeMulti
	}

	results, err := h.client.Search(c.Request().Context(), query, mediaType)
	if err != nil {
		return providerError(err)
	}
	if results == nil {
		results = []tmdb.Item{}
	}
	return c.JSON(http.StatusOK, map[string]any{"results": results})
}

// Discover lists items by genre ordered by popularity.
// GET /api/v1/metadata/discover?genre=878&type=movie|tv|any&page=1
func (h *Handlers) Discover(c echo.Context) error {
	genreID, err := strconv.Atoi(c.QueryParam("genre"))
	if err != nil || genreID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid genre")
	}

	mediaType := tmdb.MediaType(c.QueryParam("type"))
	if mediaType == "" || mediaType == "any" {
		mediaType = tmdb.MediaTypeMulti
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))

	results, err := h.client.DiscoverByGenre(c.Request().Context(), genreID, mediaType, page)
	if err != nil {
		return providerError(err)
	}
	if results == nil {
		results = []tmdb.Item{}
	}
	return c.JSON(http.StatusOK, map[string]any{"results": results})
}

// Popular lists the top popular movies or series.
// GET /api/v1/metadata/popular?type=movie|tv
func (h *Handlers) Popular(c echo.Context) error {
	mediaType := tmdb.MediaType(c.QueryParam("type"))
	if mediaType != tmdb.MediaTypeMovie && mediaType != tmdb.MediaTypeTV {
		return echo.NewHTTPError(http.StatusBadRequest, `type must be "movie" or "tv"`)
	}

	results, err := h.client.Popular(c.Request().Context(), mediaType)
	if err != nil {
		return providerError(err)
	}
	if results == nil {
		results = []tmdb.Item{}
	}
	return c.JSON(http.StatusOK, map[string]any{"results": results})
}

// Details returns the extended record for a TMDB id, movie first with a
// series fallback.
// GET /api/v1/metadata/:tmdbId
func (h *Handlers) Details(c echo.Context) error {
	tmdbID, err := strconv.Atoi(c.Param("tmdbId"))
	if err != nil || tmdbID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid TMDB id")
	}

	details, err := h.client.Details(c.Request().Context(), tmdbID)
	if err != nil {
		return providerError(err)
	}
	return c.JSON(http.StatusOK, details)
}

func providerError(err error) error {
	switch {
	case errors.Is(err, tmdb.ErrAPIKeyMissing):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, tmdb.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, tmdb.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
}
