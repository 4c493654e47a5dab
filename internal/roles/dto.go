package roles

import (
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
)

type CreateRoleRequest struct {
	Name        string  `json:"name" validate:"required,oneof=admin vendor procurement"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// UpdateRoleRequest mutates the description only; role names are fixed.
type UpdateRoleRequest struct {
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type RoleResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ToRoleResponse maps a role row; shared with the users package for the
// nested role shape.
func ToRoleResponse(r *models.Role) *RoleResponse {
	if r == nil {
		return nil
	}
	return &RoleResponse{
		ID:          r.ID,
		Name:        string(r.Name),
		Description: r.Description,
	}
}
