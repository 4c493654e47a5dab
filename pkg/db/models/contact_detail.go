package models

import "time"

// ContactDetail holds the people reachable at a vendor. One row per vendor.
type ContactDetail struct {
	ID                    uint      `gorm:"primaryKey;autoIncrement"`
	VendorID              uint      `gorm:"column:vendor_id;not null;uniqueIndex"`
	PrimaryContactName    string    `gorm:"column:primary_contact_name;not null"`
	JobTitle              string    `gorm:"column:job_title;not null"`
	EmailAddress          string    `gorm:"column:email_address;not null"`
	PhoneNumber           string    `gorm:"column:phone_number;not null"`
	SecondaryContactName  *string   `gorm:"column:secondary_contact_name"`
	SecondaryContactEmail *string   `gorm:"column:secondary_contact_email"`
	Website               *string   `gorm:"column:website"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
