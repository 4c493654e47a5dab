package vendors

import (
	"context"

	"gorm.io/gorm"

	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
)

// Repository exposes vendor aggregate persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateAggregate(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error)
	FindByID(ctx context.Context, id uint) (*models.Vendor, error)
	List(ctx context.Context, status string) ([]models.Vendor, error)
	ListWithFollowups(ctx context.Context) ([]models.Vendor, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	RegistrationNumberExists(ctx context.Context, regNumber string, excludeVendorID uint) (bool, error)
	SaveVendor(ctx context.Context, vendor *models.Vendor) error
	SaveBusinessDetail(ctx context.Context, detail *models.BusinessDetail) error
	SaveContactDetail(ctx context.Context, detail *models.ContactDetail) error
	SaveBankingDetail(ctx context.Context, detail *models.BankingDetail) error
	SaveComplianceDetail(ctx context.Context, detail *models.ComplianceDetail) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a vendor repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// CreateAggregate inserts the vendor row together with its nested detail
// rows. GORM writes the associations in the same statement batch, so this
// must run inside a transaction for all-or-nothing semantics.
func (r *repository) CreateAggregate(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	if err := r.db.WithContext(ctx).Create(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).
		Preload("BusinessDetail").
		Preload("ContactDetail").
		Preload("BankingDetail").
		Preload("ComplianceDetail").
		First(&vendor, id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// ListWithFollowups loads every vendor with its full followup history,
// including soft-deleted records for the status projection.
func (r *repository) ListWithFollowups(ctx context.Context) ([]models.Vendor, error) {
	var rows []models.Vendor
	err := r.db.WithContext(ctx).
		Preload("FollowupRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) List(ctx context.Context, status string) ([]models.Vendor, error) {
	query := r.db.WithContext(ctx).
		Preload("BusinessDetail").
		Preload("ContactDetail").
		Preload("BankingDetail").
		Preload("ComplianceDetail").
		Order("id ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []models.Vendor
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Vendor{}).Where("vendor_email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) RegistrationNumberExists(ctx context.Context, regNumber string, excludeVendorID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BusinessDetail{}).
		Where("business_registration_number = ?", regNumber)
	if excludeVendorID != 0 {
		query = query.Where("vendor_id <> ?", excludeVendorID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) SaveVendor(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Model(&models.Vendor{}).
		Where("id = ?", vendor.ID).
		Select("vendor_name", "vendor_email", "vendor_category", "status", "remarks", "contact_person", "contact_number").
		Updates(map[string]any{
			"vendor_name":     vendor.VendorName,
			"vendor_email":    vendor.VendorEmail,
			"vendor_category": vendor.VendorCategory,
			"status":          vendor.Status,
			"remarks":         vendor.Remarks,
			"contact_person":  vendor.ContactPerson,
			"contact_number":  vendor.ContactNumber,
		}).Error
}

func (r *repository) SaveBusinessDetail(ctx context.Context, detail *models.BusinessDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *repository) SaveContactDetail(ctx context.Context, detail *models.ContactDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *repository) SaveBankingDetail(ctx context.Context, detail *models.BankingDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *repository) SaveComplianceDetail(ctx context.Context, detail *models.ComplianceDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

// Delete removes the vendor row. Detail and followup rows go with it: the
// foreign keys cascade in Postgres, and the explicit deletes cover the
// sqlite test dialector where the constraint is not emitted.
func (r *repository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	for _, model := range []any{
		&models.BusinessDetail{},
		&models.ContactDetail{},
		&models.BankingDetail{},
		&models.ComplianceDetail{},
		&models.FollowupRecord{},
	} {
		if err := db.Where("vendor_id = ?", id).Delete(model).Error; err != nil {
			return err
		}
	}
	return db.Delete(&models.Vendor{}, id).Error
}
