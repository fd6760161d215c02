package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleViewer  Role = "VIEWER"
)

// Principal is the authenticated caller extracted from an access token.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

// CanEdit reports whether the principal may create or change records.
func (p Principal) CanEdit() bool {
	return p.Role == RoleAdmin || p.Role == RoleManager
}
