package roles

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/neocodenexus/vendorx-backend/pkg/db"
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
	"github.com/neocodenexus/vendorx-backend/pkg/enums"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
)

// Service exposes role CRUD. Names come from a fixed enum; a role referenced
// by users cannot be deleted.
type Service interface {
	CreateRole(ctx context.Context, input CreateRoleRequest) (*RoleResponse, error)
	GetRole(ctx context.Context, id uint) (*RoleResponse, error)
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	UpdateRole(ctx context.Context, id uint, input UpdateRoleRequest) (*RoleResponse, error)
	DeleteRole(ctx context.Context, id uint) error
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("role repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateRole(ctx context.Context, input CreateRoleRequest) (*RoleResponse, error) {
	name, err := enums.ParseRoleName(input.Name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role name")
	}

	taken, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check role name")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "role with this name already exists")
	}

	role := &models.Role{Name: name, Description: input.Description}
	if err := s.repo.Create(ctx, role); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "role with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create role")
	}
	return ToRoleResponse(role), nil
}

func (s *service) GetRole(ctx context.Context, id uint) (*RoleResponse, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToRoleResponse(role), nil
}

func (s *service) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list roles")
	}
	items := make([]RoleResponse, len(rows))
	for i := range rows {
		items[i] = *ToRoleResponse(&rows[i])
	}
	return items, nil
}

func (s *service) UpdateRole(ctx context.Context, id uint, input UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Description != nil {
		role.Description = input.Description
		if err := s.repo.Save(ctx, role); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update role")
		}
	}
	return ToRoleResponse(role), nil
}

func (s *service) DeleteRole(ctx context.Context, id uint) error {
	role, err := s.findRole(ctx, id)
	if err != nil {
		return err
	}
	inUse, err := s.repo.CountUsers(ctx, role.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check role usage")
	}
	if inUse > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot delete a role that is assigned to users")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete role")
	}
	return nil
}

func (s *service) findRole(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "role not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup role")
	}
	return role, nil
}
