package users

import (
	"time"

	"github.com/neocodenexus/vendorx-backend/internal/roles"
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
)

type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	IsActive *bool   `json:"is_active"`
	Role     string  `json:"role" validate:"required,oneof=admin vendor procurement"`
	Password string  `json:"password" validate:"required,min=6,max=128"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	IsActive *bool   `json:"is_active"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin vendor procurement"`
	Password *string `json:"password" validate:"omitempty,min=6,max=128"`
}

// UserResponse omits the password hash.
type UserResponse struct {
	ID        uint                `json:"id"`
	Username  string              `json:"username"`
	Email     string              `json:"email"`
	FullName  *string             `json:"full_name"`
	IsActive  bool                `json:"is_active"`
	Role      *roles.RoleResponse `json:"role"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func toUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		Role:      roles.ToRoleResponse(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
