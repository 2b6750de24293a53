package models

import "time"

// Budget is one category line of an event's budget. All amounts are integer
// cents so that payment math stays exact. Subcategories and their vendor
// shares are fully-specified child rows, never optional blobs.
type Budget struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	EventID        uint   `json:"event_id" gorm:"index;not null"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	Category       string `json:"category" gorm:"size:120;not null"`
	EstimatedCents int64  `json:"estimated_cents" gorm:"not null;default:0"`
	ActualCents    int64  `json:"actual_cents" gorm:"not null;default:0"`
	Status         string `json:"status" gorm:"size:20;not null;default:'pending'"` // pending | approved | paid

	Subcategories []BudgetSubcategory `json:"subcategories" gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BudgetSubcategory struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	BudgetID       uint   `json:"budget_id" gorm:"index;not null"`
	Name           string `json:"name" gorm:"size:120;not null"`
	EstimatedCents int64  `json:"estimated_cents" gorm:"not null;default:0"`
	ActualCents    int64  `json:"actual_cents" gorm:"not null;default:0"`

	Vendors []BudgetVendorShare `json:"vendors" gorm:"foreignKey:SubcategoryID;constraint:OnDelete:CASCADE"`
}

// BudgetVendorShare is the amount already paid to one vendor for one
// subcategory. VendorID is a logical reference; the vendor may be deleted
// later, and readers must treat a dangling reference as "drop the row".
type BudgetVendorShare struct {
	ID            uint  `json:"id" gorm:"primaryKey"`
	SubcategoryID uint  `json:"subcategory_id" gorm:"index;not null"`
	VendorID      uint  `json:"vendor_id" gorm:"index;not null"`
	AmountCents   int64 `json:"amount_cents" gorm:"not null;default:0"`
}
