package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handlers provides HTTP handlers for authentication.
type Handlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHandlers creates new auth handlers.
func NewHandlers(service *Service, logger zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger.With().Str("component", "auth").Logger(),
	}
}

// RegisterRoutes registers the public auth routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Login exchanges the admin password for a session token.
// POST /api/v1/auth/login
func (h *Handlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			h.logger.Warn().Str("remote", c.RealIP()).Msg("Failed admin login attempt")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, ErrNotConfigured):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: int64(TokenExpiry.Seconds()),
	})
}
