package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

type EventHandler struct{}

func NewEventHandler() *EventHandler { return &EventHandler{} }

var eventTypes = map[string]struct{}{
	"wedding": {}, "corporate": {}, "birthday": {}, "private": {},
	"product": {}, "conference": {}, "other": {},
}

var eventStatuses = map[string]struct{}{
	"draft": {}, "active": {}, "completed": {},
}

/* ====================== DTOs ====================== */

// CustomItemReq is one row of the custom plan table on the create form; each
// row becomes a task and a budget line.
type CustomItemReq struct {
	Title          string `json:"title"`
	Phase          string `json:"phase"`
	DueDate        string `json:"due_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Flexible       bool   `json:"is_flexible"`
	Vendors        []uint `json:"vendors"`
	EstimatedCents int64  `json:"estimated_cents"`
	ActualCents    int64  `json:"actual_cents"`
	Status         string `json:"status"`
}

type CreateEventReq struct {
	Name             string          `json:"name"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	StartTime        string          `json:"start_time"`
	EndTime          string          `json:"end_time"`
	Flexible         bool            `json:"is_flexible"`
	Location         string          `json:"location"`
	TemplateID       uint            `json:"template_id"`
	ClientIDs        []uint          `json:"client_ids"`
	TotalBudgetCents int64           `json:"total_budget_cents"`
	Items            []CustomItemReq `json:"items"`
}

/* ====================== Handlers ====================== */

// GET /api/events
func (h *EventHandler) List(c echo.Context) error {
	var events []models.Event
	q := database.DB.Where("organization_id = ?", orgID(c)).Order("start_date ASC")
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		q = q.Where("status = ?", s)
	}
	if err := q.Preload("Clients").Find(&events).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, events)
}

// GET /api/events/:id
func (h *EventHandler) Get(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var ev models.Event
	if err := database.DB.Preload("Clients").
		First(&ev, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}
	return c.JSON(http.StatusOK, ev)
}

// GET /api/events/:id/details
// The event plus its tasks and budget lines, as one payload for the detail page.
func (h *EventHandler) Details(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var ev models.Event
	if err := database.DB.Preload("Clients").
		First(&ev, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}

	var tasks []models.Task
	if err := database.DB.Preload("Vendors").
		Where("event_id = ? AND organization_id = ?", id, orgID(c)).
		Order("due_date ASC, id ASC").Find(&tasks).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var budgets []models.Budget
	if err := database.DB.Preload("Subcategories.Vendors").
		Where("event_id = ? AND organization_id = ?", id, orgID(c)).
		Order("id ASC").Find(&budgets).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"event":   ev,
		"tasks":   tasks,
		"budgets": budgets,
	})
}

// POST /api/events
// Creates the event, then instantiates its plan either from a template
// (items become tasks with due dates offset from the event start, budget
// items become budget lines) or from custom item rows.
func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if !isDateYYYYMMDD(req.StartDate) {
		fields["start_date"] = "must be YYYY-MM-DD"
	}
	if req.EndDate != "" && (!isDateYYYYMMDD(req.EndDate) || req.EndDate < req.StartDate) {
		fields["end_date"] = "must not be before start_date"
	}
	if req.StartTime != "" && !reHHMM.MatchString(req.StartTime) {
		fields["start_time"] = "must be HH:MM"
	}
	if req.EndTime != "" && (!reHHMM.MatchString(req.EndTime) || (req.StartTime != "" && req.EndTime <= req.StartTime)) {
		fields["end_time"] = "must be after start_time (HH:MM)"
	}
	if req.TotalBudgetCents < 0 {
		fields["total_budget_cents"] = "must not be negative"
	}
	if req.TemplateID == 0 {
		// Custom item rows become tasks and budget lines, so they pass the
		// same field checks the task endpoint enforces.
		for _, it := range req.Items {
			if strings.TrimSpace(it.Title) == "" {
				fields["items"] = "every item needs a title"
				break
			}
			if _, ok := taskPhases[it.Phase]; !ok {
				fields["items"] = "item " + it.Title + ": phase must be pre-event, event-day or post-event"
				break
			}
			if it.DueDate != "" && !isDateYYYYMMDD(it.DueDate) {
				fields["items"] = "item " + it.Title + ": due_date must be YYYY-MM-DD"
				break
			}
			if it.StartTime != "" && !reHHMM.MatchString(it.StartTime) {
				fields["items"] = "item " + it.Title + ": start_time must be HH:MM"
				break
			}
			if it.EndTime != "" && (!reHHMM.MatchString(it.EndTime) || (it.StartTime != "" && it.EndTime <= it.StartTime)) {
				fields["items"] = "item " + it.Title + ": end_time must be after start_time"
				break
			}
			if it.EstimatedCents < 0 || it.ActualCents < 0 {
				fields["items"] = "item " + it.Title + ": amounts must not be negative"
				break
			}
		}
	}
	if len(fields) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}

	eventType := "other"
	var tmpl models.Template
	if req.TemplateID != 0 {
		if err := database.DB.Preload("Items").
			First(&tmpl, "id = ? AND organization_id = ?", req.TemplateID, orgID(c)).Error; err != nil {
			return lookupErr(err, "TEMPLATE_NOT_FOUND")
		}
		eventType = tmpl.EventType
	}

	ev := models.Event{
		Name:             strings.TrimSpace(req.Name),
		EventType:        eventType,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Flexible:         req.Flexible,
		Location:         req.Location,
		Status:           "active",
		OrganizationID:   orgID(c),
		CreatedByID:      userID(c),
		TotalBudgetCents: req.TotalBudgetCents,
	}
	if err := database.DB.Create(&ev).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if len(req.ClientIDs) > 0 {
		var clients []models.Client
		database.DB.Where("organization_id = ? AND id IN ?", orgID(c), req.ClientIDs).Find(&clients)
		if len(clients) > 0 {
			_ = database.DB.Model(&ev).Association("Clients").Append(&clients)
		}
	}

	var tasks []models.Task
	var budgets []models.Budget

	switch {
	case req.TemplateID != 0:
		start, _ := time.Parse("2006-01-02", req.StartDate)
		for _, it := range tmpl.Items {
			if it.TaskType != "budget" {
				due := start.AddDate(0, 0, it.DueOffsetDays).Format("2006-01-02")
				tasks = append(tasks, models.Task{
					Title:          it.Title,
					Phase:          it.Phase,
					TaskType:       it.TaskType,
					DueDate:        due,
					StartTime:      it.StartTime,
					EndTime:        it.EndTime,
					EventID:        ev.ID,
					OrganizationID: orgID(c),
				})
			}
			if it.TaskType == "budget" || it.EstimatedCents != 0 {
				budgets = append(budgets, models.Budget{
					EventID:        ev.ID,
					OrganizationID: orgID(c),
					Category:       it.Title,
					EstimatedCents: it.EstimatedCents,
					Status:         "pending",
				})
			}
		}
	case len(req.Items) > 0:
		for _, it := range req.Items {
			status := it.Status
			if status == "" {
				status = "pending"
			}
			t := models.Task{
				Title:          it.Title,
				Phase:          it.Phase,
				TaskType:       "custom",
				DueDate:        it.DueDate,
				StartTime:      it.StartTime,
				EndTime:        it.EndTime,
				Flexible:       it.Flexible,
				EventID:        ev.ID,
				OrganizationID: orgID(c),
			}
			tasks = append(tasks, t)
			budgets = append(budgets, models.Budget{
				EventID:        ev.ID,
				OrganizationID: orgID(c),
				Category:       it.Title,
				EstimatedCents: it.EstimatedCents,
				ActualCents:    it.ActualCents,
				Status:         status,
			})
		}
	}

	if len(tasks) > 0 {
		if err := database.DB.Create(&tasks).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_CREATE_FAILED"})
		}
	}
	if len(budgets) > 0 {
		if err := database.DB.Create(&budgets).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_CREATE_FAILED"})
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"id":      ev.ID,
		"event":   ev,
		"tasks":   tasks,
		"budgets": budgets,
	})
}

// PUT /api/events/:id
func (h *EventHandler) Update(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var ev models.Event
	if err := database.DB.First(&ev, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}

	var p struct {
		Name             string `json:"name"`
		EventType        string `json:"event_type"`
		StartDate        string `json:"start_date"`
		EndDate          string `json:"end_date"`
		StartTime        string `json:"start_time"`
		EndTime          string `json:"end_time"`
		Location         string `json:"location"`
		Status           string `json:"status"`
		TotalBudgetCents *int64 `json:"total_budget_cents"`
	}
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	if p.Name != "" {
		ev.Name = strings.TrimSpace(p.Name)
	}
	if p.EventType != "" {
		if _, ok := eventTypes[p.EventType]; !ok {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "event_type invalid"})
		}
		ev.EventType = p.EventType
	}
	if p.StartDate != "" {
		if !isDateYYYYMMDD(p.StartDate) {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "start_date invalid"})
		}
		ev.StartDate = p.StartDate
	}
	if p.EndDate != "" {
		if !isDateYYYYMMDD(p.EndDate) || p.EndDate < ev.StartDate {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "end_date invalid"})
		}
		ev.EndDate = p.EndDate
	}
	if p.StartTime != "" {
		if !reHHMM.MatchString(p.StartTime) {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "start_time invalid"})
		}
		ev.StartTime = p.StartTime
	}
	if p.EndTime != "" {
		if !reHHMM.MatchString(p.EndTime) || (ev.StartTime != "" && p.EndTime <= ev.StartTime) {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "end_time invalid"})
		}
		ev.EndTime = p.EndTime
	}
	if p.Location != "" {
		ev.Location = p.Location
	}
	if p.Status != "" {
		if _, ok := eventStatuses[p.Status]; !ok {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "status invalid"})
		}
		ev.Status = p.Status
	}
	if p.TotalBudgetCents != nil {
		if *p.TotalBudgetCents < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "total_budget_cents invalid"})
		}
		ev.TotalBudgetCents = *p.TotalBudgetCents
	}

	if err := database.DB.Save(&ev).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, ev)
}

// DELETE /api/events/:id
// Tasks and budget lines of the event go with it.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var deleted int64
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Event{}, "id = ? AND organization_id = ?", id, orgID(c))
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		if deleted == 0 {
			return nil
		}
		if err := tx.Delete(&models.Task{}, "event_id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
			return err
		}
		var budgetIDs []uint
		if err := tx.Model(&models.Budget{}).
			Where("event_id = ? AND organization_id = ?", id, orgID(c)).Pluck("id", &budgetIDs).Error; err != nil {
			return err
		}
		if len(budgetIDs) == 0 {
			return nil
		}
		var subIDs []uint
		if err := tx.Model(&models.BudgetSubcategory{}).Where("budget_id IN ?", budgetIDs).Pluck("id", &subIDs).Error; err != nil {
			return err
		}
		if len(subIDs) > 0 {
			if err := tx.Delete(&models.BudgetVendorShare{}, "subcategory_id IN ?", subIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.BudgetSubcategory{}, "budget_id IN ?", budgetIDs).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Budget{}, "id IN ?", budgetIDs).Error
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if deleted == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
