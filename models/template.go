package models

import "time"

// Template is a reusable plan: creating an event from a template clones its
// items into tasks (due dates offset from the event start) and budget lines.
type Template struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"size:120;not null;uniqueIndex:uniq_template_name_org"`
	EventType      string `json:"event_type" gorm:"size:20;not null"`
	Image          string `json:"image" gorm:"size:300"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null;uniqueIndex:uniq_template_name_org"`

	Items []TemplateItem `json:"items" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TemplateItem struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	TemplateID    uint   `json:"template_id" gorm:"index;not null"`
	Title         string `json:"title" gorm:"size:200;not null"`
	Phase         string `json:"phase" gorm:"size:20;not null"`     // pre-event | event-day | post-event
	TaskType      string `json:"task_type" gorm:"size:20;not null"` // vendor | client | budget | internal
	DueOffsetDays int    `json:"due_offset_days" gorm:"not null;default:0"` // days from event start
	StartTime     string `json:"start_time" gorm:"size:5"` // HH:MM
	EndTime       string `json:"end_time" gorm:"size:5"`   // HH:MM
	EstimatedCents int64 `json:"estimated_cents" gorm:"not null;default:0"`
}
