package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handlers provides HTTP handlers for catalog operations.
type Handlers struct {
	service *Service
}

// NewHandlers creates new catalog handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the catalog routes. Read operations go on the
// public group, mutations on the admin group.
func (h *Handlers) RegisterRoutes(public, admin *echo.Group) {
	public.GET("/movies", h.List)
	public.GET("/movies/:id", h.Get)
	public.GET("/movies/:id/links", h.ListLinks)
	public.GET("/categories", h.Categories)

	admin.POST("/movies", h.Create)
	admin.DELETE("/movies/:id", h.Delete)
	admin.POST("/movies/:id/links", h.AddLink)
	admin.DELETE("/movies/:id/links/:linkId", h.DeleteLink)
}

// ListResponse is a page of movies.
type ListResponse struct {
	Movies   []*Movie `json:"movies"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}

// List returns movies with search, category and type filtering.
// GET /api/v1/movies
func (h *Handlers) List(c echo.Context) error {
	opts := ListOptions{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Type:     c.QueryParam("type"),
	}
	opts.Page, _ = strconv.Atoi(c.QueryParam("page"))
	opts.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	movies, total, err := h.service.List(c.Request().Context(), opts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if movies == nil {
		movies = []*Movie{}
	}

	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}

	return c.JSON(http.StatusOK, ListResponse{
		Movies:   movies,
		Total:    total,
		Page:     opts.Page,
		PageSize: opts.PageSize,
	})
}

// Get returns a single movie.
// GET /api/v1/movies/:id
func (h *Handlers) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	movie, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, movie)
}

// Categories returns the distinct category labels in the catalog.
// GET /api/v1/categories
func (h *Handlers) Categories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, categories)
}

// Create adds a manually entered movie.
// POST /api/v1/movies
func (h *Handlers) Create(c echo.Context) error {
	var input CreateMovieInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movie, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, ErrInvalidMovie) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, movie)
}

// Delete removes a movie.
// DELETE /api/v1/movies/:id
func (h *Handlers) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ListLinks returns the watch links for a movie.
// GET /api/v1/movies/:id/links
func (h *Handlers) ListLinks(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	links, err := h.service.ListLinks(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if links == nil {
		links = []*MovieLink{}
	}
	return c.JSON(http.StatusOK, links)
}

// AddLinkRequest is the payload for attaching a watch link.
type AddLinkRequest struct {
	DownloadURL string `json:"downloadUrl"`
}

// AddLink attaches a watch link to a movie.
// POST /api/v1/movies/:id/links
func (h *Handlers) AddLink(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req AddLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	link, err := h.service.AddLink(c.Request().Context(), id, req.DownloadURL)
	if err != nil {
		switch {
		case errors.Is(err, ErrMovieNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidMovie):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, link)
}

// DeleteLink removes a watch link.
// DELETE /api/v1/movies/:id/links/:linkId
func (h *Handlers) DeleteLink(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	linkID, err := strconv.ParseInt(c.Param("linkId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid link id")
	}

	if err := h.service.DeleteLink(c.Request().Context(), id, linkID); err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
