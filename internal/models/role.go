package models

import (
	"errors"
	"fmt"
)

// Role identifies the kind of user account. The values are stored in the
// users table and must stay stable.
type Role int

const (
	RoleStudent       Role = 1
	RoleTeacher       Role = 2
	RoleAdministrator Role = 3
)

// ErrInvalidRole indicates a role value outside the known range. A stored
// role that fails to parse is a data-integrity fault, not user error.
var ErrInvalidRole = errors.New("invalid role")

// ParseRole converts a stored integer into a Role.
func ParseRole(value int) (Role, error) {
	switch Role(value) {
	case RoleStudent, RoleTeacher, RoleAdministrator:
		return Role(value), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidRole, value)
	}
}

// Label returns the human-readable name of the role.
func (r Role) Label() (string, error) {
	switch r {
	case RoleStudent:
		return "student", nil
	case RoleTeacher:
		return "teacher", nil
	case RoleAdministrator:
		return "administrator", nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidRole, int(r))
	}
}

// IsTeacher reports whether the role carries teacher capabilities.
// Administrators inherit everything a teacher can do.
func (r Role) IsTeacher() bool {
	return r == RoleTeacher || r == RoleAdministrator
}

// IsAdministrator reports whether the role carries organization-admin rights.
func (r Role) IsAdministrator() bool {
	return r == RoleAdministrator
}

// IsStudent reports whether the role is a plain student account.
func (r Role) IsStudent() bool {
	return r == RoleStudent
}
