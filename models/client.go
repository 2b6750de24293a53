package models

import "time"

// Client is the end customer of an organization. AccessToken gates the public
// read-only event view; it is generated once on the first share and reused.
type Client struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"size:120;not null"`
	Email          string `json:"email" gorm:"size:120;not null"`
	Phone          string `json:"phone" gorm:"size:20"`
	Avatar         string `json:"avatar" gorm:"size:300"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	CreatedByID    uint   `json:"created_by" gorm:"not null"`
	AccessToken    string `json:"-" gorm:"uniqueIndex;size:64"` // 32 random bytes, hex

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
