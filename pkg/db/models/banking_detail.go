package models

import "time"

// BankingDetail holds payment rails for a vendor. One row per vendor.
type BankingDetail struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	VendorID          uint      `gorm:"column:vendor_id;not null;uniqueIndex"`
	BankName          string    `gorm:"column:bank_name;not null"`
	AccountHolderName string    `gorm:"column:account_holder_name;not null"`
	AccountNumber     string    `gorm:"column:account_number;not null"`
	AccountType       string    `gorm:"column:account_type;not null"`
	RoutingSwiftCode  string    `gorm:"column:routing_swift_code;not null"`
	IBAN              *string   `gorm:"column:iban"`
	PaymentTerms      string    `gorm:"column:payment_terms;not null"`
	Currency          string    `gorm:"column:currency;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
