package importer

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movieshub/movieshub/internal/metadata/tmdb"
)

// Handlers provides HTTP handlers for import operations.
type Handlers struct {
	service *Service
}

// NewHandlers creates new import handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the import routes on the admin group.
func (h *Handlers) RegisterRoutes(admin *echo.Group) {
	admin.POST("/import/bulk", h.StartBulk)
	admin.POST("/import/titles", h.StartTitles)
	admin.POST("/import/items", h.StartItems)
	admin.POST("/import/cancel", h.Cancel)
	admin.GET("/import/status", h.Status)
}

// StartBulk launches an import of the curated popular-titles list.
// POST /api/v1/import/bulk
func (h *Handlers) StartBulk(c echo.Context) error {
	if err := h.service.StartTitles(CuratedTitles()); err != nil {
		return importStartError(err)
	}
	return c.JSON(http.StatusAccepted, map[string]int{"total": len(CuratedTitles())})
}

// StartTitlesRequest is a caller-supplied title list to import.
type StartTitlesRequest struct {
	Titles []WorkItem `json:"titles"`
}

// StartTitles launches an import of a caller-supplied title list.
// POST /api/v1/import/titles
func (h *Handlers) StartTitles(c echo.Context) error {
	var req StartTitlesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Titles) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no titles supplied")
	}

	if err := h.service.StartTitles(req.Titles); err != nil {
		return importStartError(err)
	}
	return c.JSON(http.StatusAccepted, map[string]int{"total": len(req.Titles)})
}

// StartItemsRequest is a discovery selection to import.
type StartItemsRequest struct {
	Items []tmdb.Item `json:"items"`
}

// StartItems launches an import of selected discovery results.
// POST /api/v1/import/items
func (h *Handlers) StartItems(c echo.Context) error {
	var req StartItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no items supplied")
	}

	if err := h.service.StartItems(req.Items); err != nil {
		return importStartError(err)
	}
	return c.JSON(http.StatusAccepted, map[string]int{"total": len(req.Items)})
}

// Cancel aborts the in-flight run, if any.
// POST /api/v1/import/cancel
func (h *Handlers) Cancel(c echo.Context) error {
	if !h.service.CancelRun() {
		return echo.NewHTTPError(http.StatusConflict, "no import in progress")
	}
	return c.NoContent(http.StatusAccepted)
}

// Status returns the orchestrator state and the last run report.
// GET /api/v1/import/status
func (h *Handlers) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Status())
}

func importStartError(err error) error {
	if errors.Is(err, ErrImportInProgress) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
