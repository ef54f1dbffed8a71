package handler // identity endpoint backed by the trusted-header middleware

import (
	"net/http" // http provides status code constants

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/nazosched/schedule-coordinator/internal/middleware" // middleware resolved the caller identity
)

// GetUsername handles GET /api/get-username and returns the username the
// upstream reverse proxy injected, or null for anonymous requests. No
// verification happens here; the header is trusted by contract.
func (h *API) GetUsername(c echo.Context) error {
	username := middleware.Username(c)
	if username == "" {
		return c.JSON(http.StatusOK, map[string]any{"username": nil})
	}
	return c.JSON(http.StatusOK, map[string]any{"username": username})
}
