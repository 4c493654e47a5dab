package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	pkgauth "github.com/neocodenexus/vendorx-backend/pkg/auth"
	"github.com/neocodenexus/vendorx-backend/pkg/config"
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
	"github.com/neocodenexus/vendorx-backend/pkg/enums"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/security"
)

// One message for missing users and bad passwords, so the endpoint does not
// reveal which usernames exist.
const invalidCredentialsMessage = "incorrect username or password"

// Service issues bearer tokens for valid credentials.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
}

type userSource interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type service struct {
	users  userSource
	jwtCfg config.JWTConfig
	now    func() time.Time
}

func NewService(users userSource, jwtCfg config.JWTConfig) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user source is required")
	}
	return &service{
		users:  users,
		jwtCfg: jwtCfg,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	role := roleName(user)
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		Username: user.Username,
		Role:     role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    user.Username,
		Role:        string(role),
	}, nil
}

func roleName(user *models.User) enums.RoleName {
	if user.Role != nil {
		return user.Role.Name
	}
	return ""
}
