package vendors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
	"github.com/neocodenexus/vendorx-backend/pkg/enums"
)

func setupVendorsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Vendor{},
		&models.BusinessDetail{},
		&models.ContactDetail{},
		&models.BankingDetail{},
		&models.ComplianceDetail{},
		&models.FollowupRecord{},
	))
	return conn
}

func newVendorAggregate(email, regNumber string) *models.Vendor {
	expiry := time.Now().AddDate(1, 0, 0)
	return &models.Vendor{
		VendorName:     "Acme Industrial Supply",
		VendorEmail:    email,
		VendorCategory: strPtr("raw_materials"),
		Status:         enums.VendorStatusActive,
		ContactPerson:  strPtr("Dana Whitfield"),
		ContactNumber:  strPtr("+1-555-0182"),
		BusinessDetail: &models.BusinessDetail{
			LegalBusinessName:          "Acme Industrial Supply LLC",
			BusinessRegistrationNumber: regNumber,
			BusinessType:               "LLC",
			YearEstablished:            2009,
			BusinessAddress:            "41 Foundry Rd, Dayton OH",
			IndustrySector:             "manufacturing",
		},
		ContactDetail: &models.ContactDetail{
			PrimaryContactName: "Dana Whitfield",
			JobTitle:           "Account Manager",
			EmailAddress:       "dana@acme-supply.test",
			PhoneNumber:        "+1-555-0182",
		},
		BankingDetail: &models.BankingDetail{
			BankName:          "First Commercial Bank",
			AccountHolderName: "Acme Industrial Supply LLC",
			AccountNumber:     "004418812245",
			AccountType:       "checking",
			RoutingSwiftCode:  "FCBKUS33",
			PaymentTerms:      "net_30",
			Currency:          "USD",
		},
		ComplianceDetail: &models.ComplianceDetail{
			TaxIdentificationNumber: "84-2219901",
			BusinessLicenseNumber:   "BL-99105",
			LicenseExpiryDate:       expiry,
			InsuranceProvider:       "Hartline Mutual",
			InsurancePolicyNumber:   "HM-51120",
			InsuranceExpiryDate:     expiry,
		},
	}
}

func TestCreateAggregateWritesDetailRows(t *testing.T) {
	conn := setupVendorsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateAggregate(ctx, newVendorAggregate("sales@acme-supply.test", "REG-2218845"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.BusinessDetail)
	require.NotNil(t, found.ContactDetail)
	require.NotNil(t, found.BankingDetail)
	require.NotNil(t, found.ComplianceDetail)
	assert.Equal(t, created.ID, found.BusinessDetail.VendorID)
	assert.Equal(t, "REG-2218845", found.BusinessDetail.BusinessRegistrationNumber)
}

func TestCreateAggregateDuplicateEmailFails(t *testing.T) {
	conn := setupVendorsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	_, err := repo.CreateAggregate(ctx, newVendorAggregate("sales@acme-supply.test", "REG-1"))
	require.NoError(t, err)

	_, err = repo.CreateAggregate(ctx, newVendorAggregate("sales@acme-supply.test", "REG-2"))
	require.Error(t, err)
	assert.NotNil(t, mapUniqueViolation(err))
}

func TestCreateAggregateDuplicateRegistrationNumberFails(t *testing.T) {
	conn := setupVendorsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	_, err := repo.CreateAggregate(ctx, newVendorAggregate("a@acme.test", "REG-SAME"))
	require.NoError(t, err)

	_, err = repo.CreateAggregate(ctx, newVendorAggregate("b@acme.test", "REG-SAME"))
	require.Error(t, err)
}

func TestExistsByEmailExcludesVendor(t *testing.T) {
	conn := setupVendorsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateAggregate(ctx, newVendorAggregate("sales@acme-supply.test", "REG-1"))
	require.NoError(t, err)

	taken, err := repo.ExistsByEmail(ctx, "sales@acme-supply.test", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByEmail(ctx, "sales@acme-supply.test", created.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRegistrationNumberExistsExcludesVendor(t *testing.T) {
	conn := setupVendorsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateAggregate(ctx, newVendorAggregate("sales@acme-supply.test", "REG-1"))
	require.NoError(t, err)

	taken, err := repo.RegistrationNumberExists(ctx, "REG-1", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.RegistrationNumberExists(ctx, "REG-1", created.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestListFiltersByStatus(t *testing.T) {
	conn := setupVendorsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	active := newVendorAggregate("a@acme.test", "REG-1")
	_, err := repo.CreateAggregate(ctx, active)
	require.NoError(t, err)

	completed := newVendorAggregate("b@acme.test", "REG-2")
	completed.Status = enums.VendorStatusCompleted
	_, err = repo.CreateAggregate(ctx, completed)
	require.NoError(t, err)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyCompleted, err := repo.List(ctx, string(enums.VendorStatusCompleted))
	require.NoError(t, err)
	require.Len(t, onlyCompleted, 1)
	assert.Equal(t, "b@acme.test", onlyCompleted[0].VendorEmail)
}

func TestListWithFollowupsIncludesSoftDeleted(t *testing.T) {
	conn := setupVendorsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateAggregate(ctx, newVendorAggregate("sales@acme-supply.test", "REG-1"))
	require.NoError(t, err)

	require.NoError(t, conn.Create(&models.FollowupRecord{
		VendorID:       created.ID,
		IssueType:      enums.IssueTypeMissingData,
		FollowupStatus: "requested",
		Subject:        "Missing banking proof",
		Body:           "Please send a voided check.",
		IsDeleted:      true,
	}).Error)

	rows, err := repo.ListWithFollowups(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].FollowupRecords, 1)
	assert.True(t, rows[0].FollowupRecords[0].IsDeleted)
}

func TestSaveVendorUpdatesSelectedColumns(t *testing.T) {
	conn := setupVendorsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateAggregate(ctx, newVendorAggregate("sales@acme-supply.test", "REG-1"))
	require.NoError(t, err)

	created.VendorName = "Acme Industrial Group"
	created.Status = enums.VendorStatusCompleted
	require.NoError(t, repo.SaveVendor(ctx, created))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Industrial Group", found.VendorName)
	assert.Equal(t, enums.VendorStatusCompleted, found.Status)
}

func TestDeleteRemovesAggregate(t *testing.T) {
	conn := setupVendorsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateAggregate(ctx, newVendorAggregate("sales@acme-supply.test", "REG-1"))
	require.NoError(t, err)
	require.NoError(t, conn.Create(&models.FollowupRecord{
		VendorID:       created.ID,
		IssueType:      enums.IssueTypeClarification,
		FollowupStatus: "requested",
		Subject:        "Clarify payment terms",
		Body:           "Net 30 or net 45?",
	}).Error)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var detailCount int64
	require.NoError(t, conn.Model(&models.BusinessDetail{}).Where("vendor_id = ?", created.ID).Count(&detailCount).Error)
	assert.Zero(t, detailCount)

	var followupCount int64
	require.NoError(t, conn.Model(&models.FollowupRecord{}).Where("vendor_id = ?", created.ID).Count(&followupCount).Error)
	assert.Zero(t, followupCount)
}
