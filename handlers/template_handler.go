package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler { return &TemplateHandler{} }

// GET /api/templates
func (h *TemplateHandler) List(c echo.Context) error {
	var templates []models.Template
	if err := database.DB.Preload("Items").
		Where("organization_id = ?", orgID(c)).
		Order("name ASC").Find(&templates).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, templates)
}

type TemplateItemReq struct {
	Title          string `json:"title"`
	Phase          string `json:"phase"`
	TaskType       string `json:"task_type"`
	DueOffsetDays  int    `json:"due_offset_days"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	EstimatedCents int64  `json:"estimated_cents"`
}

type CreateTemplateReq struct {
	Name      string            `json:"name"`
	EventType string            `json:"event_type"`
	Image     string            `json:"image"`
	Items     []TemplateItemReq `json:"items"`
}

// POST /api/templates
func (h *TemplateHandler) Create(c echo.Context) error {
	var req CreateTemplateReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if _, ok := eventTypes[req.EventType]; !ok {
		fields["event_type"] = "unknown event type"
	}
	for _, it := range req.Items {
		if strings.TrimSpace(it.Title) == "" {
			fields["items"] = "every item needs a title"
			break
		}
		if _, ok := taskPhases[it.Phase]; !ok {
			fields["items"] = "item " + it.Title + ": invalid phase"
			break
		}
		if _, ok := taskTypes[it.TaskType]; !ok {
			fields["items"] = "item " + it.Title + ": invalid task type"
			break
		}
		validateTaskTimes(it.StartTime, it.EndTime, fields)
		if len(fields) > 0 {
			break
		}
	}
	if len(fields) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}

	tpl := models.Template{
		Name:           strings.TrimSpace(req.Name),
		EventType:      req.EventType,
		Image:          req.Image,
		OrganizationID: orgID(c),
	}
	for _, it := range req.Items {
		tpl.Items = append(tpl.Items, models.TemplateItem{
			Title:          strings.TrimSpace(it.Title),
			Phase:          it.Phase,
			TaskType:       it.TaskType,
			DueOffsetDays:  it.DueOffsetDays,
			StartTime:      it.StartTime,
			EndTime:        it.EndTime,
			EstimatedCents: it.EstimatedCents,
		})
	}
	if err := database.DB.Create(&tpl).Error; err != nil {
		if strings.Contains(err.Error(), "uniq_template_name_org") {
			return echo.NewHTTPError(http.StatusConflict, map[string]string{"error": "TEMPLATE_NAME_EXISTS"})
		}
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, tpl)
}

// DELETE /api/templates/:id
func (h *TemplateHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var tpl models.Template
	if err := database.DB.First(&tpl, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TemplateItem{}, "template_id = ?", tpl.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&tpl).Error
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /api/templates/seed
// Inserts the starter templates for organizations that have none yet.
func (h *TemplateHandler) Seed(c echo.Context) error {
	var count int64
	database.DB.Model(&models.Template{}).Where("organization_id = ?", orgID(c)).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusOK, map[string]any{"seeded": false, "existing": count})
	}

	templates := starterTemplates(orgID(c))
	if err := database.DB.Create(&templates).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_INSERT_FAILED"})
	}
	return c.JSON(http.StatusCreated, map[string]any{"seeded": true, "count": len(templates)})
}

func starterTemplates(org uint) []models.Template {
	return []models.Template{
		{
			Name: "Classic Wedding", EventType: "wedding", OrganizationID: org,
			Items: []models.TemplateItem{
				{Title: "Book venue", Phase: models.PhasePreEvent, TaskType: "vendor", DueOffsetDays: -90},
				{Title: "Hire photographer", Phase: models.PhasePreEvent, TaskType: "vendor", DueOffsetDays: -60},
				{Title: "Send invitations", Phase: models.PhasePreEvent, TaskType: "client", DueOffsetDays: -45},
				{Title: "Final menu tasting", Phase: models.PhasePreEvent, TaskType: "client", DueOffsetDays: -14},
				{Title: "Ceremony", Phase: models.PhaseEventDay, TaskType: "internal", StartTime: "14:00", EndTime: "15:00"},
				{Title: "Reception", Phase: models.PhaseEventDay, TaskType: "internal", StartTime: "18:00", EndTime: "23:00"},
				{Title: "Return rentals", Phase: models.PhasePostEvent, TaskType: "vendor", DueOffsetDays: 2},
				{Title: "Venue", Phase: models.PhasePreEvent, TaskType: "budget", EstimatedCents: 500000_00},
				{Title: "Catering", Phase: models.PhasePreEvent, TaskType: "budget", EstimatedCents: 300000_00},
				{Title: "Photography", Phase: models.PhasePreEvent, TaskType: "budget", EstimatedCents: 80000_00},
			},
		},
		{
			Name: "Corporate Conference", EventType: "conference", OrganizationID: org,
			Items: []models.TemplateItem{
				{Title: "Confirm speakers", Phase: models.PhasePreEvent, TaskType: "internal", DueOffsetDays: -30},
				{Title: "Book AV vendor", Phase: models.PhasePreEvent, TaskType: "vendor", DueOffsetDays: -21},
				{Title: "Registration desk", Phase: models.PhaseEventDay, TaskType: "internal", StartTime: "08:00", EndTime: "09:30"},
				{Title: "Keynote", Phase: models.PhaseEventDay, TaskType: "internal", StartTime: "10:00", EndTime: "11:00"},
				{Title: "Collect feedback", Phase: models.PhasePostEvent, TaskType: "client", DueOffsetDays: 3},
				{Title: "Venue", Phase: models.PhasePreEvent, TaskType: "budget", EstimatedCents: 200000_00},
				{Title: "AV and staging", Phase: models.PhasePreEvent, TaskType: "budget", EstimatedCents: 120000_00},
			},
		},
		{
			Name: "Birthday Party", EventType: "birthday", OrganizationID: org,
			Items: []models.TemplateItem{
				{Title: "Order cake", Phase: models.PhasePreEvent, TaskType: "vendor", DueOffsetDays: -7},
				{Title: "Buy decorations", Phase: models.PhasePreEvent, TaskType: "internal", DueOffsetDays: -3},
				{Title: "Party", Phase: models.PhaseEventDay, TaskType: "internal", StartTime: "16:00", EndTime: "20:00"},
				{Title: "Thank-you notes", Phase: models.PhasePostEvent, TaskType: "client", DueOffsetDays: 2},
				{Title: "Cake and food", Phase: models.PhasePreEvent, TaskType: "budget", EstimatedCents: 15000_00},
				{Title: "Decorations", Phase: models.PhasePreEvent, TaskType: "budget", EstimatedCents: 5000_00},
			},
		},
	}
}
