package model

import (
	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleOperator UserRole = "OPERATOR"
	UserRoleViewer   UserRole = "VIEWER"
)

type Principal struct {
	UserID uuid.UUID
	Role   UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

// CanManageRegistry reports whether the user may register or remove
// vehicles from the registry.
func (p Principal) CanManageRegistry() bool {
	return p.Role == UserRoleAdmin || p.Role == UserRoleOperator
}
