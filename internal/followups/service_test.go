package followups

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
	"github.com/neocodenexus/vendorx-backend/pkg/enums"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
)

func setupFollowupsTest(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Vendor{}, &models.FollowupRecord{}))

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func seedVendor(t *testing.T, conn *gorm.DB) *models.Vendor {
	t.Helper()

	vendor := &models.Vendor{
		VendorName:  "Acme Industrial Supply",
		VendorEmail: "sales@acme-supply.test",
		Status:      enums.VendorStatusActive,
	}
	require.NoError(t, conn.Create(vendor).Error)
	return vendor
}

func createRecord(t *testing.T, svc Service, vendorID uint) *RecordResponse {
	t.Helper()

	resp, err := svc.CreateRecord(context.Background(), CreateRecordRequest{
		VendorID:  vendorID,
		IssueType: "missing_data",
		Subject:   "Missing banking proof",
		Body:      "Please send a voided check.",
	})
	require.NoError(t, err)
	return resp
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}

func TestCreateRecordDefaultsStatus(t *testing.T) {
	svc, conn := setupFollowupsTest(t)
	vendor := seedVendor(t, conn)

	resp := createRecord(t, svc, vendor.ID)
	assert.Equal(t, "requested", resp.FollowupStatus)
	assert.False(t, resp.IsDeleted)
}

func TestCreateRecordVendorNotFound(t *testing.T) {
	svc, _ := setupFollowupsTest(t)

	_, err := svc.CreateRecord(context.Background(), CreateRecordRequest{
		VendorID:  404,
		IssueType: "missing_data",
		Subject:   "s",
		Body:      "b",
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateRecordInvalidIssueType(t *testing.T) {
	svc, conn := setupFollowupsTest(t)
	vendor := seedVendor(t, conn)

	_, err := svc.CreateRecord(context.Background(), CreateRecordRequest{
		VendorID:  vendor.ID,
		IssueType: "ghosted",
		Subject:   "s",
		Body:      "b",
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestListRecordsExcludesDeletedByDefault(t *testing.T) {
	svc, conn := setupFollowupsTest(t)
	vendor := seedVendor(t, conn)
	ctx := context.Background()

	kept := createRecord(t, svc, vendor.ID)
	removed := createRecord(t, svc, vendor.ID)
	require.NoError(t, svc.DeleteRecord(ctx, removed.ID))

	rows, err := svc.ListRecords(ctx, ListFilter{VendorID: &vendor.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, kept.ID, rows[0].ID)

	all, err := svc.ListRecords(ctx, ListFilter{VendorID: &vendor.ID, IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetRecordSoftDeletedIsNotFound(t *testing.T) {
	svc, conn := setupFollowupsTest(t)
	vendor := seedVendor(t, conn)
	ctx := context.Background()

	record := createRecord(t, svc, vendor.ID)
	require.NoError(t, svc.DeleteRecord(ctx, record.ID))

	_, err := svc.GetRecord(ctx, record.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateRecordPartialPatch(t *testing.T) {
	svc, conn := setupFollowupsTest(t)
	vendor := seedVendor(t, conn)
	ctx := context.Background()

	record := createRecord(t, svc, vendor.ID)

	status := "escalated"
	stage := "second_notice"
	updated, err := svc.UpdateRecord(ctx, record.ID, UpdateRecordRequest{
		FollowupStatus: &status,
		FollowupStage:  &stage,
	})
	require.NoError(t, err)
	assert.Equal(t, "escalated", updated.FollowupStatus)
	require.NotNil(t, updated.FollowupStage)
	assert.Equal(t, "second_notice", *updated.FollowupStage)
	assert.Equal(t, "Missing banking proof", updated.Subject)
}

func TestDeleteRecordKeepsRowForProjection(t *testing.T) {
	svc, conn := setupFollowupsTest(t)
	vendor := seedVendor(t, conn)
	ctx := context.Background()

	record := createRecord(t, svc, vendor.ID)
	require.NoError(t, svc.DeleteRecord(ctx, record.ID))

	var row models.FollowupRecord
	require.NoError(t, conn.First(&row, record.ID).Error)
	assert.True(t, row.IsDeleted)
}

func TestDeleteRecordTwiceIsNotFound(t *testing.T) {
	svc, conn := setupFollowupsTest(t)
	vendor := seedVendor(t, conn)
	ctx := context.Background()

	record := createRecord(t, svc, vendor.ID)
	require.NoError(t, svc.DeleteRecord(ctx, record.ID))

	err := svc.DeleteRecord(ctx, record.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}
