package models

import (
	"time"

	"github.com/neocodenexus/vendorx-backend/pkg/enums"
)

// Vendor is the root of the onboarding aggregate. The four detail rows and
// the followup history hang off it and are removed with it.
type Vendor struct {
	ID             uint               `gorm:"primaryKey;autoIncrement"`
	VendorName     string             `gorm:"column:vendor_name;not null"`
	VendorEmail    string             `gorm:"column:vendor_email;not null;uniqueIndex"`
	VendorCategory *string            `gorm:"column:vendor_category"`
	Status         enums.VendorStatus `gorm:"column:status;not null;default:'active'"`
	Remarks        *string            `gorm:"column:remarks"`
	ContactPerson  *string            `gorm:"column:contact_person"`
	ContactNumber  *string            `gorm:"column:contact_number"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`

	BusinessDetail   *BusinessDetail   `gorm:"constraint:OnDelete:CASCADE"`
	ContactDetail    *ContactDetail    `gorm:"constraint:OnDelete:CASCADE"`
	BankingDetail    *BankingDetail    `gorm:"constraint:OnDelete:CASCADE"`
	ComplianceDetail *ComplianceDetail `gorm:"constraint:OnDelete:CASCADE"`
	FollowupRecords  []FollowupRecord  `gorm:"constraint:OnDelete:CASCADE"`
}
