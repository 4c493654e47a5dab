package followups

import (
	"context"

	"gorm.io/gorm"

	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
)

// Repository persists followup records. Deletion is a soft flag so the
// onboarding-status projection keeps seeing the history.
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

func (r *Repository) Create(ctx context.Context, record *models.FollowupRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID returns soft-deleted rows too; visibility rules live in the service.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.FollowupRecord, error) {
	var row models.FollowupRecord
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.FollowupRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.FollowupRecord{}).Order("created_at ASC")
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if !filter.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var rows []models.FollowupRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Save(ctx context.Context, record *models.FollowupRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}
