package models

import (
	"time"

	"github.com/neocodenexus/vendorx-backend/pkg/enums"
)

// FollowupRecord captures an outreach attempt against a vendor. Records are
// soft deleted so the history stays available to the status projection.
type FollowupRecord struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"`
	VendorID       uint            `gorm:"column:vendor_id;not null;index"`
	IssueType      enums.IssueType `gorm:"column:issue_type;not null"`
	FollowupStatus string          `gorm:"column:followup_status;not null;default:'requested'"`
	Subject        string          `gorm:"column:subject;not null"`
	Body           string          `gorm:"column:body;not null"`
	FollowupStage  *string         `gorm:"column:followup_stage"`
	IsDeleted      bool            `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
