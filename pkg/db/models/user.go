package models

import "time"

// User represents the canonical identity entity.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;not null;uniqueIndex"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	FullName     *string   `gorm:"column:full_name"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	RoleID       uint      `gorm:"column:role_id;not null"`
	Role         *Role     `gorm:"foreignKey:RoleID"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
