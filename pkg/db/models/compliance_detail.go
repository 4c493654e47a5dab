package models

import "time"

// ComplianceDetail holds licensing and insurance facts for a vendor. One row
// per vendor.
type ComplianceDetail struct {
	ID                      uint      `gorm:"primaryKey;autoIncrement"`
	VendorID                uint      `gorm:"column:vendor_id;not null;uniqueIndex"`
	TaxIdentificationNumber string    `gorm:"column:tax_identification_number;not null"`
	BusinessLicenseNumber   string    `gorm:"column:business_license_number;not null"`
	LicenseExpiryDate       time.Time `gorm:"column:license_expiry_date;not null"`
	InsuranceProvider       string    `gorm:"column:insurance_provider;not null"`
	InsurancePolicyNumber   string    `gorm:"column:insurance_policy_number;not null"`
	InsuranceExpiryDate     time.Time `gorm:"column:insurance_expiry_date;not null"`
	IndustryCertifications  *string   `gorm:"column:industry_certifications"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
