package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
	"github.com/Raihanhn/event-saas/timegrid"
)

type CalendarHandler struct {
	Grid timegrid.Config
}

func NewCalendarHandler() *CalendarHandler {
	return &CalendarHandler{Grid: timegrid.DefaultConfig()}
}

// GET /api/calendar/items
// Projects the organization's events and tasks into transient calendar
// items. Items are rebuilt on every fetch and never persisted; drags are
// written back through the task reschedule endpoint. Tasks with a malformed
// start time degrade to flexible instead of disappearing from the calendar.
func (h *CalendarHandler) Items(c echo.Context) error {
	var events []models.Event
	if err := database.DB.Where("organization_id = ?", orgID(c)).
		Order("start_date ASC").Find(&events).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var tasks []models.Task
	if err := database.DB.Preload("Vendors").
		Where("organization_id = ?", orgID(c)).
		Order("due_date ASC, id ASC").Find(&tasks).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	items := make([]timegrid.Item, 0, len(events)+len(tasks))
	for i := range events {
		items = append(items, eventItem(&events[i]))
	}
	for i := range tasks {
		items = append(items, taskItem(&tasks[i]))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"items": items,
		"grid": map[string]int{
			"row_height_px": h.Grid.RowHeightPx,
			"start_hour":    h.Grid.StartHour,
			"snap_minutes":  h.Grid.SnapMinutes,
			"day_count":     h.Grid.DayCount,
		},
	})
}

func eventItem(ev *models.Event) timegrid.Item {
	id := fmt.Sprintf("event-%d", ev.ID)
	it := timegrid.Item{
		ID:        id,
		SourceID:  ev.ID,
		Type:      "event",
		Title:     ev.Name,
		StartDate: ev.StartDate,
		Flexible:  ev.Flexible,
		Vendors:   []uint{},
		Color:     timegrid.ColorForID(id),
	}
	applyClock(&it, ev.StartTime, ev.EndTime)
	return it
}

func taskItem(t *models.Task) timegrid.Item {
	id := fmt.Sprintf("task-%d", t.ID)
	vendorIDs := make([]uint, 0, len(t.Vendors))
	for _, v := range t.Vendors {
		vendorIDs = append(vendorIDs, v.ID)
	}
	it := timegrid.Item{
		ID:        id,
		SourceID:  t.ID,
		Type:      "task",
		Title:     t.Title,
		StartDate: t.DueDate,
		Flexible:  t.Flexible,
		Vendors:   vendorIDs,
		Phase:     t.Phase,
		Color:     timegrid.ColorForID(id),
	}
	applyClock(&it, t.StartTime, t.EndTime)
	return it
}

// applyClock copies validated times onto the item. An item without a valid
// start time cannot be placed on the time grid, so it becomes flexible.
func applyClock(it *timegrid.Item, startTime, endTime string) {
	if it.Flexible {
		return
	}
	if startTime == "" {
		it.Flexible = true
		return
	}
	start, err := timegrid.ParseClock(startTime)
	if err != nil {
		it.Flexible = true
		return
	}
	it.StartTime = start.String()
	if endTime != "" {
		if end, err := timegrid.ParseClock(endTime); err == nil {
			it.EndTime = end.String()
		}
	}
}
