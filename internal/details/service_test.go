package details

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
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
)

func setupDetailsTest(t *testing.T) (Service, *gorm.DB) {
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

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func seedVendor(t *testing.T, conn *gorm.DB, email string) *models.Vendor {
	t.Helper()

	vendor := &models.Vendor{
		VendorName:  "Acme Industrial Supply",
		VendorEmail: email,
		Status:      enums.VendorStatusActive,
	}
	require.NoError(t, conn.Create(vendor).Error)
	return vendor
}

func businessPayload(regNumber string) BusinessDetailPayload {
	return BusinessDetailPayload{
		LegalBusinessName:          "Acme Industrial Supply LLC",
		BusinessRegistrationNumber: regNumber,
		BusinessType:               "LLC",
		YearEstablished:            2009,
		BusinessAddress:            "41 Foundry Rd, Dayton OH",
		IndustrySector:             "manufacturing",
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}

func TestCreateBusinessRequiresVendor(t *testing.T) {
	svc, _ := setupDetailsTest(t)

	_, err := svc.CreateBusiness(context.Background(), CreateBusinessDetailRequest{
		VendorID:              99,
		BusinessDetailPayload: businessPayload("REG-1"),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateBusinessSuccess(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	vendor := seedVendor(t, conn, "sales@acme-supply.test")

	resp, err := svc.CreateBusiness(context.Background(), CreateBusinessDetailRequest{
		VendorID:              vendor.ID,
		BusinessDetailPayload: businessPayload(" REG-1 "),
	})
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, resp.VendorID)
	assert.Equal(t, "REG-1", resp.BusinessRegistrationNumber)
}

func TestCreateBusinessOnePerVendor(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	vendor := seedVendor(t, conn, "sales@acme-supply.test")
	ctx := context.Background()

	_, err := svc.CreateBusiness(ctx, CreateBusinessDetailRequest{
		VendorID:              vendor.ID,
		BusinessDetailPayload: businessPayload("REG-1"),
	})
	require.NoError(t, err)

	_, err = svc.CreateBusiness(ctx, CreateBusinessDetailRequest{
		VendorID:              vendor.ID,
		BusinessDetailPayload: businessPayload("REG-2"),
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateBusinessRegistrationNumberConflict(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	first := seedVendor(t, conn, "a@acme.test")
	second := seedVendor(t, conn, "b@acme.test")
	ctx := context.Background()

	_, err := svc.CreateBusiness(ctx, CreateBusinessDetailRequest{
		VendorID:              first.ID,
		BusinessDetailPayload: businessPayload("REG-SAME"),
	})
	require.NoError(t, err)

	_, err = svc.CreateBusiness(ctx, CreateBusinessDetailRequest{
		VendorID:              second.ID,
		BusinessDetailPayload: businessPayload("REG-SAME"),
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateBusinessRejectsFutureYear(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	vendor := seedVendor(t, conn, "sales@acme-supply.test")

	payload := businessPayload("REG-1")
	payload.YearEstablished = time.Now().Year() + 1
	_, err := svc.CreateBusiness(context.Background(), CreateBusinessDetailRequest{
		VendorID:              vendor.ID,
		BusinessDetailPayload: payload,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateBusinessPartialPatch(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	vendor := seedVendor(t, conn, "sales@acme-supply.test")
	ctx := context.Background()

	created, err := svc.CreateBusiness(ctx, CreateBusinessDetailRequest{
		VendorID:              vendor.ID,
		BusinessDetailPayload: businessPayload("REG-1"),
	})
	require.NoError(t, err)

	sector := "logistics"
	updated, err := svc.UpdateBusiness(ctx, created.ID, BusinessDetailPatch{IndustrySector: &sector})
	require.NoError(t, err)
	assert.Equal(t, "logistics", updated.IndustrySector)
	assert.Equal(t, "REG-1", updated.BusinessRegistrationNumber)
}

func TestUpdateBusinessNotFound(t *testing.T) {
	svc, _ := setupDetailsTest(t)

	sector := "logistics"
	_, err := svc.UpdateBusiness(context.Background(), 404, BusinessDetailPatch{IndustrySector: &sector})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateBusinessReparent(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	first := seedVendor(t, conn, "sales@acme-supply.test")
	second := seedVendor(t, conn, "orders@nova-parts.test")
	ctx := context.Background()

	created, err := svc.CreateBusiness(ctx, CreateBusinessDetailRequest{
		VendorID:              first.ID,
		BusinessDetailPayload: businessPayload("REG-1"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBusiness(ctx, created.ID, BusinessDetailPatch{VendorID: &second.ID})
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.VendorID)
	assert.Equal(t, "REG-1", updated.BusinessRegistrationNumber)
}

func TestUpdateBusinessReparentVendorMissing(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	vendor := seedVendor(t, conn, "sales@acme-supply.test")
	ctx := context.Background()

	created, err := svc.CreateBusiness(ctx, CreateBusinessDetailRequest{
		VendorID:              vendor.ID,
		BusinessDetailPayload: businessPayload("REG-1"),
	})
	require.NoError(t, err)

	missing := uint(404)
	_, err = svc.UpdateBusiness(ctx, created.ID, BusinessDetailPatch{VendorID: &missing})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateContactReparentConflict(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	first := seedVendor(t, conn, "sales@acme-supply.test")
	second := seedVendor(t, conn, "orders@nova-parts.test")
	ctx := context.Background()

	payload := ContactDetailPayload{
		PrimaryContactName: "Dana Whitfield",
		JobTitle:           "Account Manager",
		EmailAddress:       "dana@acme-supply.test",
		PhoneNumber:        "+1-555-0182",
	}
	created, err := svc.CreateContact(ctx, CreateContactDetailRequest{VendorID: first.ID, ContactDetailPayload: payload})
	require.NoError(t, err)
	payload.EmailAddress = "ops@nova-parts.test"
	_, err = svc.CreateContact(ctx, CreateContactDetailRequest{VendorID: second.ID, ContactDetailPayload: payload})
	require.NoError(t, err)

	_, err = svc.UpdateContact(ctx, created.ID, ContactDetailPatch{VendorID: &second.ID})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestDeleteBusiness(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	vendor := seedVendor(t, conn, "sales@acme-supply.test")
	ctx := context.Background()

	created, err := svc.CreateBusiness(ctx, CreateBusinessDetailRequest{
		VendorID:              vendor.ID,
		BusinessDetailPayload: businessPayload("REG-1"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBusiness(ctx, created.ID))

	_, err = svc.GetBusiness(ctx, created.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateContactNormalizesEmail(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	vendor := seedVendor(t, conn, "sales@acme-supply.test")

	resp, err := svc.CreateContact(context.Background(), CreateContactDetailRequest{
		VendorID: vendor.ID,
		ContactDetailPayload: ContactDetailPayload{
			PrimaryContactName: "Dana Whitfield",
			JobTitle:           "Account Manager",
			EmailAddress:       " Dana@Acme-Supply.test ",
			PhoneNumber:        "+1-555-0182",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@acme-supply.test", resp.EmailAddress)
}

func TestCreateBankingUppercasesCurrency(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	vendor := seedVendor(t, conn, "sales@acme-supply.test")

	resp, err := svc.CreateBanking(context.Background(), CreateBankingDetailRequest{
		VendorID: vendor.ID,
		BankingDetailPayload: BankingDetailPayload{
			BankName:          "First Commercial Bank",
			AccountHolderName: "Acme Industrial Supply LLC",
			AccountNumber:     "004418812245",
			AccountType:       "checking",
			RoutingSwiftCode:  "FCBKUS33",
			PaymentTerms:      "net_30",
			Currency:          "usd",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", resp.Currency)
}

func TestCreateComplianceRejectsPastExpiry(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	vendor := seedVendor(t, conn, "sales@acme-supply.test")

	_, err := svc.CreateCompliance(context.Background(), CreateComplianceDetailRequest{
		VendorID: vendor.ID,
		ComplianceDetailPayload: ComplianceDetailPayload{
			TaxIdentificationNumber: "84-2219901",
			BusinessLicenseNumber:   "BL-99105",
			LicenseExpiryDate:       time.Now().AddDate(0, 0, -1),
			InsuranceProvider:       "Hartline Mutual",
			InsurancePolicyNumber:   "HM-51120",
			InsuranceExpiryDate:     time.Now().AddDate(1, 0, 0),
		},
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateComplianceRejectsPastExpiry(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	vendor := seedVendor(t, conn, "sales@acme-supply.test")
	ctx := context.Background()

	future := time.Now().AddDate(1, 0, 0)
	created, err := svc.CreateCompliance(ctx, CreateComplianceDetailRequest{
		VendorID: vendor.ID,
		ComplianceDetailPayload: ComplianceDetailPayload{
			TaxIdentificationNumber: "84-2219901",
			BusinessLicenseNumber:   "BL-99105",
			LicenseExpiryDate:       future,
			InsuranceProvider:       "Hartline Mutual",
			InsurancePolicyNumber:   "HM-51120",
			InsuranceExpiryDate:     future,
		},
	})
	require.NoError(t, err)

	past := time.Now().AddDate(0, -1, 0)
	_, err = svc.UpdateCompliance(ctx, created.ID, ComplianceDetailPatch{InsuranceExpiryDate: &past})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestListBusinessReturnsAllRows(t *testing.T) {
	svc, conn := setupDetailsTest(t)
	first := seedVendor(t, conn, "a@acme.test")
	second := seedVendor(t, conn, "b@acme.test")
	ctx := context.Background()

	_, err := svc.CreateBusiness(ctx, CreateBusinessDetailRequest{VendorID: first.ID, BusinessDetailPayload: businessPayload("REG-1")})
	require.NoError(t, err)
	_, err = svc.CreateBusiness(ctx, CreateBusinessDetailRequest{VendorID: second.ID, BusinessDetailPayload: businessPayload("REG-2")})
	require.NoError(t, err)

	rows, err := svc.ListBusiness(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
