package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/neocodenexus/vendorx-backend/pkg/auth"
	"github.com/neocodenexus/vendorx-backend/pkg/config"
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
	"github.com/neocodenexus/vendorx-backend/pkg/enums"
)

func TestAuthRejectsMissingToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	handler := Auth(cfg, stubUserSource{user: activeUser("ava.ops")}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	handler := Auth(cfg, stubUserSource{user: activeUser("ava.ops")}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsUnknownUser(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	token := mintTestToken(t, cfg, "ghost", enums.RoleNameVendor)

	handler := Auth(cfg, stubUserSource{err: errors.New("not found")}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted account, got %d", resp.Code)
	}
}

func TestAuthAllowsValidToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	token := mintTestToken(t, cfg, "ava.ops", enums.RoleNameProcurement)

	var captured struct {
		username string
		role     string
		active   bool
	}
	handler := Auth(cfg, stubUserSource{user: activeUser("ava.ops")}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.username = UsernameFromContext(r.Context())
		captured.role = RoleFromContext(r.Context())
		captured.active = UserActiveFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.username != "ava.ops" {
		t.Fatalf("expected username in context, got %q", captured.username)
	}
	if captured.role != string(enums.RoleNameProcurement) {
		t.Fatalf("expected role procurement got %s", captured.role)
	}
	if !captured.active {
		t.Fatal("expected active flag in context")
	}
}

func TestRequireActiveUserBlocksInactive(t *testing.T) {
	handler := RequireActiveUser(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserActive(WithUsername(req.Context(), "ava.ops"), false))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inactive user, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserActive(req.Context(), true))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for active user, got %d", resp.Code)
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, username string, role enums.RoleName) string {
	t.Helper()
	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
		Username: username,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func activeUser(username string) *models.User {
	return &models.User{
		ID:       1,
		Username: username,
		Email:    username + "@vendorx.io",
		IsActive: true,
		RoleID:   1,
	}
}

type stubUserSource struct {
	user *models.User
	err  error
}

func (s stubUserSource) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}
