package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Raihanhn/event-saas/database"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// GET /healthz
func (h *HealthHandler) Check(c echo.Context) error {
	sqlDB, err := database.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]string{"error": "DB_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
