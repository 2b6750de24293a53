package models

import "time"

type User struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"size:120;not null"`
	Email          string `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Password       string `json:"-" gorm:"not null"` // bcrypt hash
	Phone          string `json:"phone" gorm:"size:20"`
	Location       string `json:"location" gorm:"size:120"`
	Role           string `json:"role" gorm:"size:20;not null;default:'admin'"` // admin | team
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	CanEditVendor  bool   `json:"can_edit_vendor" gorm:"not null;default:false"`
	ProfileImage   string `json:"profile_image" gorm:"size:300"` // URL only, uploads are out of scope
	Theme          string `json:"theme" gorm:"size:10;not null;default:'light'"` // light | dark

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
