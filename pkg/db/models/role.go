package models

import (
	"time"

	"github.com/neocodenexus/vendorx-backend/pkg/enums"
)

// Role represents an application permissions role.
type Role struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"`
	Name        enums.RoleName `gorm:"column:name;not null;uniqueIndex"`
	Description *string        `gorm:"column:description"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
