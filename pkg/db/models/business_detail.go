package models

import "time"

// BusinessDetail holds the legal entity facts for a vendor. One row per
// vendor; the registration number is unique across the whole table.
type BusinessDetail struct {
	ID                         uint      `gorm:"primaryKey;autoIncrement"`
	VendorID                   uint      `gorm:"column:vendor_id;not null;uniqueIndex"`
	LegalBusinessName          string    `gorm:"column:legal_business_name;not null"`
	BusinessRegistrationNumber string    `gorm:"column:business_registration_number;not null;uniqueIndex"`
	BusinessType               string    `gorm:"column:business_type;not null"`
	YearEstablished            int       `gorm:"column:year_established;not null"`
	BusinessAddress            string    `gorm:"column:business_address;not null"`
	IndustrySector             string    `gorm:"column:industry_sector;not null"`
	NumberOfEmployees          *int      `gorm:"column:number_of_employees"`
	CreatedAt                  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
