package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodinventory/internal/errors"
	"foodinventory/internal/service"
)

// HealthHandler reports liveness and storage readiness.
type HealthHandler struct {
	svc service.FoodItemService
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(svc service.FoodItemService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Live godoc
// @Summary Liveness probe
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (h *HealthHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Database godoc
// @Summary Storage readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errors.ErrorResponse
// @Router /health/db [get]
func (h *HealthHandler) Database(c echo.Context) error {
	if err := h.svc.CheckStorage(c.Request().Context()); err != nil {
		c.Logger().Errorf("storage health check: %v", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, errors.ErrorResponse{
			Error: "database unavailable",
			Code:  "DATABASE_UNAVAILABLE",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
