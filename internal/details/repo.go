package details

import (
	"context"

	"gorm.io/gorm"

	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
)

// Repository persists the four vendor detail record types.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) VendorExists(ctx context.Context, vendorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vendor{}).Where("id = ?", vendorID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) RegistrationNumberExists(ctx context.Context, regNumber string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BusinessDetail{}).
		Where("business_registration_number = ?", regNumber)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CreateBusiness(ctx context.Context, detail *models.BusinessDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *Repository) FindBusinessByID(ctx context.Context, id uint) (*models.BusinessDetail, error) {
	var row models.BusinessDetail
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListBusiness(ctx context.Context) ([]models.BusinessDetail, error) {
	var rows []models.BusinessDetail
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) SaveBusiness(ctx context.Context, detail *models.BusinessDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *Repository) DeleteBusiness(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.BusinessDetail{}, id).Error
}

func (r *Repository) CreateContact(ctx context.Context, detail *models.ContactDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *Repository) FindContactByID(ctx context.Context, id uint) (*models.ContactDetail, error) {
	var row models.ContactDetail
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListContact(ctx context.Context) ([]models.ContactDetail, error) {
	var rows []models.ContactDetail
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) SaveContact(ctx context.Context, detail *models.ContactDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *Repository) DeleteContact(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ContactDetail{}, id).Error
}

func (r *Repository) CreateBanking(ctx context.Context, detail *models.BankingDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *Repository) FindBankingByID(ctx context.Context, id uint) (*models.BankingDetail, error) {
	var row models.BankingDetail
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListBanking(ctx context.Context) ([]models.BankingDetail, error) {
	var rows []models.BankingDetail
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) SaveBanking(ctx context.Context, detail *models.BankingDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *Repository) DeleteBanking(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.BankingDetail{}, id).Error
}

func (r *Repository) CreateCompliance(ctx context.Context, detail *models.ComplianceDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *Repository) FindComplianceByID(ctx context.Context, id uint) (*models.ComplianceDetail, error) {
	var row models.ComplianceDetail
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListCompliance(ctx context.Context) ([]models.ComplianceDetail, error) {
	var rows []models.ComplianceDetail
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) SaveCompliance(ctx context.Context, detail *models.ComplianceDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *Repository) DeleteCompliance(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ComplianceDetail{}, id).Error
}
