package models

import (
	"fmt"
	"strings"
)

// Role gates which portal area a browser session may open. It is not a
// security boundary: the backend authorises every call on its own.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
	RoleTeacher    Role = "teacher"
	RoleStudent    Role = "student"
)

// ParseRole accepts the backend spellings (ADMIN, SUPER_ADMIN, SUPERADMIN,
// TEACHER, STUDENT) as well as the lower-case forms.
func ParseRole(value string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("_", "", "-", "", " ", "").Replace(normalized)

	switch Role(normalized) {
	case RoleAdmin, RoleSuperAdmin, RoleTeacher, RoleStudent:
		return Role(normalized), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, value)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Home is the landing route after a successful login.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/app/admin"
	case RoleSuperAdmin:
		return "/app/superadmin"
	case RoleTeacher:
		return "/teacher/dashboard"
	case RoleStudent:
		return "/student"
	default:
		return "/"
	}
}

func (r Role) String() string {
	return string(r)
}
