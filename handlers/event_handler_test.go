package handlers

import (
	"net/http"
	"testing"

	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

func TestCreateEventRejectsInvalidCustomItems(t *testing.T) {
	openTestDB(t)
	seedOrg(t)
	h := NewEventHandler()

	tests := []struct {
		name string
		item string
	}{
		{"missing title", `{"phase":"pre-event"}`},
		{"bogus phase", `{"title":"Setup","phase":"someday"}`},
		{"bad due date", `{"title":"Setup","phase":"pre-event","due_date":"12/09/2026"}`},
		{"bad start time", `{"title":"Setup","phase":"pre-event","start_time":"25:99"}`},
		{"end before start", `{"title":"Setup","phase":"pre-event","start_time":"14:00","end_time":"13:00"}`},
		{"negative amount", `{"title":"Setup","phase":"pre-event","estimated_cents":-100}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"name":"Gala","start_date":"2026-09-12","items":[` + tt.item + `]}`
			c, rec := jsonCtx(http.MethodPost, "/api/events", body)
			if got := callStatus(t, h.Create(c), rec); got != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", got)
			}
		})
	}

	// Nothing from the rejected requests may have been written.
	var events, tasks int64
	database.DB.Model(&models.Event{}).Count(&events)
	database.DB.Model(&models.Task{}).Count(&tasks)
	if events != 0 || tasks != 0 {
		t.Fatalf("rejected requests persisted rows: events=%d tasks=%d", events, tasks)
	}
}

func TestCreateEventCustomItems(t *testing.T) {
	openTestDB(t)
	seedOrg(t)
	h := NewEventHandler()

	body := `{
		"name": "Gala",
		"start_date": "2026-09-12",
		"total_budget_cents": 500000,
		"items": [
			{"title": "Stage setup", "phase": "pre-event", "due_date": "2026-09-10",
			 "start_time": "09:00", "end_time": "11:00", "estimated_cents": 120000}
		]
	}`
	c, rec := jsonCtx(http.MethodPost, "/api/events", body)
	if got := callStatus(t, h.Create(c), rec); got != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", got, rec.Body.String())
	}

	var task models.Task
	if err := database.DB.First(&task, "title = ?", "Stage setup").Error; err != nil {
		t.Fatalf("task not created: %v", err)
	}
	if task.TaskType != "custom" || task.Phase != "pre-event" || task.StartTime != "09:00" {
		t.Errorf("task = %+v, want custom pre-event 09:00", task)
	}
	var budget models.Budget
	if err := database.DB.First(&budget, "category = ?", "Stage setup").Error; err != nil {
		t.Fatalf("budget line not created: %v", err)
	}
	if budget.EstimatedCents != 120000 || budget.Status != "pending" {
		t.Errorf("budget = %+v, want 120000 cents pending", budget)
	}
}

func TestGetEventMissing(t *testing.T) {
	openTestDB(t)
	seedOrg(t)
	h := NewEventHandler()

	c, rec := jsonCtx(http.MethodGet, "/api/events/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	if got := callStatus(t, h.Get(c), rec); got != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", got)
	}
}

func TestGetEventDatabaseDown(t *testing.T) {
	openTestDB(t)
	org := seedOrg(t)
	ev := seedEvent(t, org.ID)
	h := NewEventHandler()

	// A dead connection is a 500, not a phantom 404.
	sqlDB, err := database.DB.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.Close()

	c, rec := jsonCtx(http.MethodGet, "/api/events/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	_ = ev
	if got := callStatus(t, h.Get(c), rec); got != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", got)
	}
}
