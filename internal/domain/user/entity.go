package user

import "time"

// Role is the access level attached to a user account.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSupervisor  Role = "supervisor"
	RoleSiteManager Role = "site_manager"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleSiteManager:
		return true
	}
	return false
}

// CanManageSite reports whether the role may mutate attendance and payroll data.
func (r Role) CanManageSite() bool {
	return r == RoleAdmin || r == RoleSupervisor || r == RoleSiteManager
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	// Site managers are pinned to one site; admins and supervisors see all.
	SiteID    *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
