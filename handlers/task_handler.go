package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
	"github.com/Raihanhn/event-saas/timegrid"
)

type TaskHandler struct {
	Grid timegrid.Config
}

func NewTaskHandler() *TaskHandler {
	return &TaskHandler{Grid: timegrid.DefaultConfig()}
}

var taskPhases = map[string]struct{}{
	models.PhasePreEvent: {}, models.PhaseEventDay: {}, models.PhasePostEvent: {},
}

var taskStatuses = map[string]struct{}{
	"pending": {}, "in-progress": {}, "completed": {},
}

var taskTypes = map[string]struct{}{
	"vendor": {}, "client": {}, "budget": {}, "internal": {}, "custom": {},
}

func validateTaskTimes(startTime, endTime string, fields map[string]string) {
	if startTime != "" && !reHHMM.MatchString(startTime) {
		fields["start_time"] = "must be HH:MM"
	}
	if endTime != "" && (!reHHMM.MatchString(endTime) || (startTime != "" && endTime <= startTime)) {
		fields["end_time"] = "must be after start_time (HH:MM)"
	}
}

/* ====================== CRUD ====================== */

// GET /api/tasks?event_id=&phase=
func (h *TaskHandler) List(c echo.Context) error {
	q := database.DB.Where("organization_id = ?", orgID(c))
	if ev := atoiOr(c.QueryParam("event_id"), 0); ev > 0 {
		q = q.Where("event_id = ?", ev)
	}
	if p := strings.TrimSpace(c.QueryParam("phase")); p != "" {
		q = q.Where("phase = ?", p)
	}
	var tasks []models.Task
	if err := q.Preload("Vendors").Order("due_date ASC, id ASC").Find(&tasks).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, tasks)
}

// POST /api/tasks
func (h *TaskHandler) Create(c echo.Context) error {
	var v models.Task
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	fields := map[string]string{}
	if strings.TrimSpace(v.Title) == "" {
		fields["title"] = "title is required"
	}
	if _, ok := taskPhases[v.Phase]; !ok {
		fields["phase"] = "must be pre-event, event-day or post-event"
	}
	if _, ok := taskTypes[v.TaskType]; !ok {
		fields["task_type"] = "unknown task type"
	}
	if v.DueDate != "" && !isDateYYYYMMDD(v.DueDate) {
		fields["due_date"] = "must be YYYY-MM-DD"
	}
	validateTaskTimes(v.StartTime, v.EndTime, fields)
	if v.EventID == 0 {
		fields["event_id"] = "event_id is required"
	}
	if len(fields) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}

	var ev models.Event
	if err := database.DB.First(&ev, "id = ? AND organization_id = ?", v.EventID, orgID(c)).Error; err != nil {
		return lookupErr(err, "EVENT_NOT_FOUND")
	}

	vendors := v.Vendors
	v.Vendors = nil
	v.OrganizationID = orgID(c)
	if v.Status == "" {
		v.Status = "pending"
	}
	if err := database.DB.Create(&v).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	h.replaceVendors(c, &v, vendors)
	return c.JSON(http.StatusCreated, map[string]any{"id": v.ID})
}

// PUT /api/tasks/:id
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var t models.Task
	if err := database.DB.First(&t, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}

	var p struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		DueDate     string  `json:"due_date"`
		StartTime   string  `json:"start_time"`
		EndTime     string  `json:"end_time"`
		Flexible    *bool   `json:"is_flexible"`
		Phase       string  `json:"phase"`
		Status      string  `json:"status"`
		AssignedTo  *uint   `json:"assigned_to"`
		Vendors     []uint  `json:"vendor_ids"`
	}
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	if p.Title != "" {
		t.Title = strings.TrimSpace(p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != "" {
		if !isDateYYYYMMDD(p.DueDate) {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "due_date invalid"})
		}
		t.DueDate = p.DueDate
	}
	if p.StartTime != "" {
		if !reHHMM.MatchString(p.StartTime) {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "start_time invalid"})
		}
		t.StartTime = p.StartTime
	}
	if p.EndTime != "" {
		if !reHHMM.MatchString(p.EndTime) || (t.StartTime != "" && p.EndTime <= t.StartTime) {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "end_time invalid"})
		}
		t.EndTime = p.EndTime
	}
	if p.Flexible != nil {
		t.Flexible = *p.Flexible
		if t.Flexible {
			// Flexible tasks are unscheduled within their day.
			t.StartTime = ""
			t.EndTime = ""
		}
	}
	if p.Phase != "" {
		if _, ok := taskPhases[p.Phase]; !ok {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "phase invalid"})
		}
		t.Phase = p.Phase
	}
	if p.Status != "" {
		if _, ok := taskStatuses[p.Status]; !ok {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "status invalid"})
		}
		t.Status = p.Status
	}
	if p.AssignedTo != nil {
		t.AssignedToID = *p.AssignedTo
	}

	if err := database.DB.Save(&t).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if p.Vendors != nil {
		var vendors []models.Vendor
		for _, vid := range p.Vendors {
			vendors = append(vendors, models.Vendor{ID: vid})
		}
		h.replaceVendors(c, &t, vendors)
	}
	return c.JSON(http.StatusOK, t)
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	tx := database.DB.Delete(&models.Task{}, "id = ? AND organization_id = ?", id, orgID(c))
	if tx.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

/* ====================== Drag reschedule ====================== */

type RescheduleReq struct {
	// Vertical drag distance in pixels; positive is down (later in the day).
	DeltaYPx float64 `json:"delta_y_px"`
	// Target day column (0=Sunday..6=Saturday); -1 keeps the current day.
	TargetDay int `json:"target_day"`
}

// PATCH /api/tasks/:id/reschedule
// Persists the end of a calendar drag gesture: the pixel delta becomes a new
// snapped start time, the drop column becomes a new date within the same
// week. Flexible tasks have no position on the grid and cannot be dragged.
func (h *TaskHandler) Reschedule(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var t models.Task
	if err := database.DB.First(&t, "id = ? AND organization_id = ?", id, orgID(c)).Error; err != nil {
		return lookupErr(err, "NOT_FOUND")
	}
	if t.Flexible {
		return echo.NewHTTPError(http.StatusConflict, map[string]string{"error": "TASK_IS_FLEXIBLE"})
	}
	if t.DueDate == "" || t.StartTime == "" {
		return echo.NewHTTPError(http.StatusConflict, map[string]string{"error": "TASK_NOT_SCHEDULED"})
	}

	var req RescheduleReq
	req.TargetDay = -1
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if req.TargetDay < -1 || req.TargetDay > 6 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "target_day invalid"})
	}

	start, err := timegrid.ParseClock(t.StartTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]string{"error": "MALFORMED_TIME"})
	}
	date, err := time.Parse("2006-01-02", t.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]string{"error": "MALFORMED_DATE"})
	}

	newClock := h.Grid.ApplyVerticalDrag(start, req.DeltaYPx)
	if req.TargetDay >= 0 {
		date = timegrid.ApplyHorizontalDrag(date, time.Weekday(req.TargetDay))
	}

	t.DueDate = timegrid.DayKey(date)
	t.StartTime = newClock.String()
	if err := database.DB.Save(&t).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, t)
}

/* ====================== internal ====================== */

func (h *TaskHandler) replaceVendors(c echo.Context, t *models.Task, vendors []models.Vendor) {
	if len(vendors) == 0 {
		_ = database.DB.Model(t).Association("Vendors").Clear()
		return
	}
	ids := make([]uint, 0, len(vendors))
	for _, v := range vendors {
		ids = append(ids, v.ID)
	}
	var known []models.Vendor
	database.DB.Where("organization_id = ? AND id IN ?", orgID(c), ids).Find(&known)
	_ = database.DB.Model(t).Association("Vendors").Replace(&known)
}
