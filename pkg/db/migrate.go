package db

import (
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
)

// AutoMigrate creates or updates the schema for every registered model.
// Intended for dev and test databases; production schemas are managed
// out of band.
func (c *Client) AutoMigrate() error {
	return c.conn.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Vendor{},
		&models.BusinessDetail{},
		&models.ContactDetail{},
		&models.BankingDetail{},
		&models.ComplianceDetail{},
		&models.FollowupRecord{},
	)
}
