package users

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/neocodenexus/vendorx-backend/pkg/config"
	"github.com/neocodenexus/vendorx-backend/pkg/db/models"
	"github.com/neocodenexus/vendorx-backend/pkg/enums"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/security"
)

// Light argon2 parameters keep the hashing tests fast.
func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func setupUsersTest(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Role{}, &models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, name := range []enums.RoleName{enums.RoleNameAdmin, enums.RoleNameVendor, enums.RoleNameProcurement} {
		if err := gdb.Create(&models.Role{Name: name}).Error; err != nil {
			t.Fatalf("seed role %s: %v", name, err)
		}
	}
	svc, err := NewService(NewRepository(gdb), testPasswordConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, gdb
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code(), err)
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func validCreateRequest() CreateUserRequest {
	return CreateUserRequest{
		Username: "maria.lopez",
		Email:    "Maria.Lopez@Acme-Supply.test",
		FullName: strPtr("Maria Lopez"),
		Role:     "procurement",
		Password: "correct horse",
	}
}

func TestCreateUserSuccess(t *testing.T) {
	svc, gdb := setupUsersTest(t)

	resp, err := svc.CreateUser(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if resp.Email != "maria.lopez@acme-supply.test" {
		t.Fatalf("email must be lowercased, got %s", resp.Email)
	}
	if !resp.IsActive {
		t.Fatal("is_active must default to true")
	}
	if resp.Role == nil || resp.Role.Name != "procurement" {
		t.Fatalf("unexpected role: %+v", resp.Role)
	}

	var stored models.User
	if err := gdb.First(&stored, resp.ID).Error; err != nil {
		t.Fatalf("load stored user: %v", err)
	}
	if !strings.HasPrefix(stored.PasswordHash, "$argon2id$") {
		t.Fatalf("password must be hashed, got %q", stored.PasswordHash)
	}
	ok, err := security.VerifyPassword("correct horse", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash must verify: ok=%v err=%v", ok, err)
	}
}

func TestCreateUserUsernameConflict(t *testing.T) {
	svc, _ := setupUsersTest(t)

	if _, err := svc.CreateUser(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("create user: %v", err)
	}
	dup := validCreateRequest()
	dup.Email = "other@acme-supply.test"
	_, err := svc.CreateUser(context.Background(), dup)
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateUserEmailConflict(t *testing.T) {
	svc, _ := setupUsersTest(t)

	if _, err := svc.CreateUser(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("create user: %v", err)
	}
	dup := validCreateRequest()
	dup.Username = "other.user"
	_, err := svc.CreateUser(context.Background(), dup)
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateUserMissingRoleRow(t *testing.T) {
	svc, gdb := setupUsersTest(t)

	if err := gdb.Where("name = ?", enums.RoleNameProcurement).Delete(&models.Role{}).Error; err != nil {
		t.Fatalf("remove role: %v", err)
	}
	_, err := svc.CreateUser(context.Background(), validCreateRequest())
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateUserInvalidRoleName(t *testing.T) {
	svc, _ := setupUsersTest(t)

	req := validCreateRequest()
	req.Role = "superuser"
	_, err := svc.CreateUser(context.Background(), req)
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := setupUsersTest(t)

	_, err := svc.GetUser(context.Background(), 404)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestListUsersIncludesRole(t *testing.T) {
	svc, _ := setupUsersTest(t)

	if _, err := svc.CreateUser(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("create user: %v", err)
	}
	items, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 user, got %d", len(items))
	}
	if items[0].Role == nil || items[0].Role.Name != "procurement" {
		t.Fatalf("role must be preloaded, got %+v", items[0].Role)
	}
}

func TestUpdateUserPartialPatch(t *testing.T) {
	svc, _ := setupUsersTest(t)

	created, err := svc.CreateUser(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	updated, err := svc.UpdateUser(context.Background(), created.ID, UpdateUserRequest{
		FullName: strPtr("Maria L. Lopez"),
		IsActive: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Username != created.Username || updated.Email != created.Email {
		t.Fatal("unpatched fields must not change")
	}
	if updated.FullName == nil || *updated.FullName != "Maria L. Lopez" {
		t.Fatalf("unexpected full name: %v", updated.FullName)
	}
	if updated.IsActive {
		t.Fatal("is_active must be patched to false")
	}
}

func TestUpdateUserRoleChange(t *testing.T) {
	svc, _ := setupUsersTest(t)

	created, err := svc.CreateUser(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	updated, err := svc.UpdateUser(context.Background(), created.ID, UpdateUserRequest{
		Role: strPtr("admin"),
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Role == nil || updated.Role.Name != "admin" {
		t.Fatalf("unexpected role: %+v", updated.Role)
	}
}

func TestUpdateUserPasswordRehashes(t *testing.T) {
	svc, gdb := setupUsersTest(t)

	created, err := svc.CreateUser(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := svc.UpdateUser(context.Background(), created.ID, UpdateUserRequest{
		Password: strPtr("new secret"),
	}); err != nil {
		t.Fatalf("update user: %v", err)
	}

	var stored models.User
	if err := gdb.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("load stored user: %v", err)
	}
	ok, err := security.VerifyPassword("new secret", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("new password must verify: ok=%v err=%v", ok, err)
	}
	ok, err = security.VerifyPassword("correct horse", stored.PasswordHash)
	if err != nil || ok {
		t.Fatalf("old password must no longer verify: ok=%v err=%v", ok, err)
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	svc, _ := setupUsersTest(t)

	first, err := svc.CreateUser(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create first user: %v", err)
	}
	second := validCreateRequest()
	second.Username = "other.user"
	second.Email = "other@acme-supply.test"
	other, err := svc.CreateUser(context.Background(), second)
	if err != nil {
		t.Fatalf("create second user: %v", err)
	}

	_, err = svc.UpdateUser(context.Background(), other.ID, UpdateUserRequest{
		Email: strPtr(first.Email),
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestUpdateUserSameEmailIsNoop(t *testing.T) {
	svc, _ := setupUsersTest(t)

	created, err := svc.CreateUser(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	updated, err := svc.UpdateUser(context.Background(), created.ID, UpdateUserRequest{
		Email: strPtr(created.Email),
	})
	if err != nil {
		t.Fatalf("update with own email must succeed: %v", err)
	}
	if updated.Email != created.Email {
		t.Fatalf("email changed unexpectedly: %s", updated.Email)
	}
}

func TestDeleteUser(t *testing.T) {
	svc, _ := setupUsersTest(t)

	created, err := svc.CreateUser(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	_, err = svc.GetUser(context.Background(), created.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)

	err = svc.DeleteUser(context.Background(), created.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}
