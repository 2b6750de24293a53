package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
	"github.com/Raihanhn/event-saas/rollup"
)

// PublicHandler serves the read-only client view. It authenticates with the
// client's share token instead of a JWT, so it must never leak internal
// payment details such as per-vendor shares.
type PublicHandler struct{}

func NewPublicHandler() *PublicHandler { return &PublicHandler{} }

type publicSubcategory struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
}

type publicBudget struct {
	Category       string              `json:"category"`
	EstimatedCents int64               `json:"estimated_cents"`
	ActualCents    int64               `json:"actual_cents"`
	Status         string              `json:"status"`
	Subcategories  []publicSubcategory `json:"subcategories"`
}

// GET /public/events/:id?token=
func (h *PublicHandler) EventView(c echo.Context) error {
	token := strings.TrimSpace(c.QueryParam("token"))
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{"error": "TOKEN_REQUIRED"})
	}
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}

	var cl models.Client
	if err := database.DB.First(&cl, "access_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{"error": "INVALID_TOKEN"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var ev models.Event
	if err := database.DB.First(&ev, "id = ? AND organization_id = ?", id, cl.OrganizationID).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}

	var tasks []models.Task
	if err := database.DB.Where("event_id = ? AND organization_id = ?", ev.ID, cl.OrganizationID).
		Order("due_date ASC, id ASC").Find(&tasks).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var budgets []models.Budget
	if err := database.DB.Preload("Subcategories").
		Where("event_id = ? AND organization_id = ?", ev.ID, cl.OrganizationID).
		Order("id ASC").Find(&budgets).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	safe := make([]publicBudget, 0, len(budgets))
	for _, b := range budgets {
		pb := publicBudget{
			Category:       b.Category,
			EstimatedCents: b.EstimatedCents,
			ActualCents:    b.ActualCents,
			Status:         b.Status,
			Subcategories:  []publicSubcategory{},
		}
		for _, sc := range b.Subcategories {
			pb.Subcategories = append(pb.Subcategories, publicSubcategory{
				Name:        sc.Name,
				AmountCents: sc.ActualCents,
			})
		}
		safe = append(safe, pb)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"event":   ev,
		"client":  map[string]string{"name": cl.Name},
		"tasks":   tasks,
		"budgets": safe,
		"summary": rollup.Summarize(ev.TotalBudgetCents, toRollupBudgets(budgets)),
	})
}
