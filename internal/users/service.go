package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/neocodenexus/vendorx-backend/pkg/config"
	"github.com/neocodenexus/vendorx-backend/pkg/db"
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
	"github.com/neocodenexus/vendorx-backend/pkg/enums"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/security"
)

// Service exposes user account CRUD. Usernames and emails are unique;
// every user references a role by name.
type Service interface {
	CreateUser(ctx context.Context, input CreateUserRequest) (*UserResponse, error)
	GetUser(ctx context.Context, id uint) (*UserResponse, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	UpdateUser(ctx context.Context, id uint, input UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id uint) error
}

type service struct {
	repo     *Repository
	password config.PasswordConfig
}

func NewService(repo *Repository, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, password: password}, nil
}

func (s *service) CreateUser(ctx context.Context, input CreateUserRequest) (*UserResponse, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	taken, err := s.repo.ExistsByUsername(ctx, username, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already registered")
	}
	taken, err = s.repo.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	role, err := s.resolveRole(ctx, input.Role)
	if err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		FullName:     input.FullName,
		PasswordHash: hash,
		IsActive:     isActive,
		RoleID:       role.ID,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if mapped := mapUserConflict(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return toUserResponse(user), nil
}

func (s *service) GetUser(ctx context.Context, id uint) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	items := make([]UserResponse, len(rows))
	for i := range rows {
		items[i] = *toUserResponse(&rows[i])
	}
	return items, nil
}

func (s *service) UpdateUser(ctx context.Context, id uint, input UpdateUserRequest) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username != user.Username {
			taken, err := s.repo.ExistsByUsername(ctx, username, user.ID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
			}
			if taken {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already registered")
			}
			user.Username = username
		}
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != user.Email {
			taken, err := s.repo.ExistsByEmail(ctx, email, user.ID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
			}
			if taken {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			user.Email = email
		}
	}
	if input.FullName != nil {
		user.FullName = input.FullName
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Role != nil {
		role, err := s.resolveRole(ctx, *input.Role)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
		user.Role = role
	}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Save(ctx, user); err != nil {
		if mapped := mapUserConflict(err); mapped != nil {
			return nil, mapped
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return toUserResponse(user), nil
}

func (s *service) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

func (s *service) findUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	return user, nil
}

// resolveRole maps a role name to its row. The role catalog is seed data, so
// a missing row is a request problem rather than a not-found resource.
func (s *service) resolveRole(ctx context.Context, name string) (*models.Role, error) {
	parsed, err := enums.ParseRoleName(name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role name")
	}
	role, err := s.repo.FindRoleByName(ctx, parsed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("role %q does not exist", name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup role")
	}
	return role, nil
}

// mapUserConflict turns unique-index violations raced past the pre-checks
// into conflicts.
func mapUserConflict(err error) error {
	switch {
	case isUniqueViolation(err, "idx_users_username", "users.username"):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username already registered")
	case isUniqueViolation(err, "idx_users_email", "users.email"):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
	case db.IsUniqueViolation(err, ""):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "user already exists")
	}
	return nil
}

func isUniqueViolation(err error, names ...string) bool {
	for _, name := range names {
		if db.IsUniqueViolation(err, name) {
			return true
		}
	}
	return false
}
