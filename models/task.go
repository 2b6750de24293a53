package models

import "time"

const (
	PhasePreEvent  = "pre-event"
	PhaseEventDay  = "event-day"
	PhasePostEvent = "post-event"
)

type Task struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Description string `json:"description" gorm:"type:text"`

	DueDate   string `json:"due_date" gorm:"type:date"` // YYYY-MM-DD, empty when undated
	StartTime string `json:"start_time" gorm:"size:5"`  // HH:MM
	EndTime   string `json:"end_time" gorm:"size:5"`    // HH:MM
	Flexible  bool   `json:"is_flexible" gorm:"not null;default:false"`

	Phase    string `json:"phase" gorm:"size:20;not null"`     // pre-event | event-day | post-event
	TaskType string `json:"task_type" gorm:"size:20;not null"` // vendor | client | budget | internal | custom
	Status   string `json:"status" gorm:"size:20;not null;default:'pending'"` // pending | in-progress | completed

	EventID        uint `json:"event_id" gorm:"index;not null"`
	OrganizationID uint `json:"organization_id" gorm:"index;not null"`
	AssignedToID   uint `json:"assigned_to" gorm:"default:0"` // users.id, 0 = unassigned

	Vendors []Vendor `json:"vendors,omitempty" gorm:"many2many:task_vendors"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
