package models

import "time"

// Organization is the tenant boundary: every other record carries an
// organization_id and every query is scoped by it.
type Organization struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:120;not null"`
	BusinessType string `json:"business_type" gorm:"size:60"`
	BusinessSize string `json:"business_size" gorm:"size:30"`
	Country      string `json:"country" gorm:"size:60"`
	Currency     string `json:"currency" gorm:"size:10"` // ISO code, e.g. "USD"
	Timezone     string `json:"timezone" gorm:"size:60"` // IANA name
	Website      string `json:"website" gorm:"size:200"`
	Plan         string `json:"plan" gorm:"size:20;not null;default:'free'"` // free | growth | studio
	AdminID      uint   `json:"admin_id" gorm:"index"`                       // users.id of the owning admin

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
