package enums

import "fmt"

// RoleName represents an application-level permissions role.
type RoleName string

const (
	RoleNameAdmin       RoleName = "admin"
	RoleNameVendor      RoleName = "vendor"
	RoleNameProcurement RoleName = "procurement"
)

var validRoleNames = []RoleName{
	RoleNameAdmin,
	RoleNameVendor,
	RoleNameProcurement,
}

// String implements fmt.Stringer.
func (r RoleName) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoleName.
func (r RoleName) IsValid() bool {
	for _, candidate := range validRoleNames {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoleName converts raw input into a RoleName.
func ParseRoleName(value string) (RoleName, error) {
	for _, candidate := range validRoleNames {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role name %q", value)
}
