package models

import "time"

// Event statuses and types mirror what the dashboard offers; both are plain
// enumerated strings, validated at the handler layer.
type Event struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"size:120;not null"`
	EventType string `json:"event_type" gorm:"size:20;not null"` // wedding | corporate | birthday | private | product | conference | other
	StartDate string `json:"start_date" gorm:"type:date;not null"`
	EndDate   string `json:"end_date" gorm:"type:date"` // optional, multi-day events
	StartTime string `json:"start_time" gorm:"size:5"`  // HH:MM
	EndTime   string `json:"end_time" gorm:"size:5"`    // HH:MM
	Flexible  bool   `json:"is_flexible" gorm:"not null;default:false"`
	Location  string `json:"location" gorm:"size:200"`
	Status    string `json:"status" gorm:"size:20;not null;default:'active'"` // draft | active | completed

	OrganizationID   uint  `json:"organization_id" gorm:"index;not null"`
	CreatedByID      uint  `json:"created_by" gorm:"not null"`
	TotalBudgetCents int64 `json:"total_budget_cents" gorm:"not null;default:0"`

	Clients []Client `json:"clients,omitempty" gorm:"many2many:event_clients"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
