package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /api/dashboard/counts
func (h *DashboardHandler) Counts(c echo.Context) error {
	org := orgID(c)
	var events, clients, team, vendors int64

	if err := database.DB.Model(&models.Event{}).Where("organization_id = ?", org).Count(&events).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Model(&models.Client{}).Where("organization_id = ?", org).Count(&clients).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Model(&models.User{}).Where("organization_id = ?", org).Count(&team).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Model(&models.Vendor{}).Where("organization_id = ?", org).Count(&vendors).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]int64{
		"events":  events,
		"clients": clients,
		"team":    team,
		"vendors": vendors,
	})
}
