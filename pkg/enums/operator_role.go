package enums

import (
	"fmt"
	"strings"
)

// OperatorRole scopes what a logged-in operator may do.
type OperatorRole string

const (
	OperatorRoleAdmin     OperatorRole = "admin"
	OperatorRoleAttendant OperatorRole = "attendant"
)

var validOperatorRoles = []OperatorRole{
	OperatorRoleAdmin,
	OperatorRoleAttendant,
}

func (r OperatorRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known OperatorRole.
func (r OperatorRole) IsValid() bool {
	for _, candidate := range validOperatorRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseOperatorRole converts raw input into an OperatorRole.
func ParseOperatorRole(value string) (OperatorRole, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validOperatorRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid operator role %q", value)
}
