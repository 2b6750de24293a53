package models

import "time"

type Vendor struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"size:120;not null"`
	Email          string `json:"email" gorm:"size:120;not null"`
	Phone          string `json:"phone" gorm:"size:20"`
	Avatar         string `json:"avatar" gorm:"size:300"`
	Role           string `json:"role" gorm:"size:60"` // e.g. "Florist", free text
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	CreatedByID    uint   `json:"created_by" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
