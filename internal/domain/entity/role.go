package entity

import (
	"strings"
	"time"
)

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleDeveloper  Role = "developer"
	RoleGuest      Role = "guest"
)

var roleRank = map[Role]int{
	RoleGuest:      0,
	RoleDeveloper:  1,
	RoleAdmin:      2,
	RoleSuperadmin: 3,
}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := roleRank[r]
	return r, ok
}

// AtLeast reports whether r sits at or above other in the role hierarchy.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

type UserRoleEntry struct {
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	AddedAt  time.Time `json:"addedAt"`
	AddedBy  string    `json:"addedBy"`
}

type Permissions struct {
	CanViewDashboard      bool `json:"canViewDashboard"`
	CanToggleUrgentQuick  bool `json:"canToggleUrgentQuick"`
	CanManageAssignees    bool `json:"canManageAssignees"`
	CanAccessConfig       bool `json:"canAccessConfig"`
	CanManageRepositories bool `json:"canManageRepositories"`
	CanManageRoles        bool `json:"canManageRoles"`
}

var rolePermissions = map[Role]Permissions{
	RoleSuperadmin: {
		CanViewDashboard:      true,
		CanToggleUrgentQuick:  true,
		CanManageAssignees:    true,
		CanAccessConfig:       true,
		CanManageRepositories: true,
		CanManageRoles:        true,
	},
	RoleAdmin: {
		CanViewDashboard:      true,
		CanToggleUrgentQuick:  true,
		CanManageAssignees:    true,
		CanAccessConfig:       true,
		CanManageRepositories: true,
		CanManageRoles:        true,
	},
	RoleDeveloper: {
		CanViewDashboard:     true,
		CanToggleUrgentQuick: true,
		CanManageAssignees:   true,
	},
	RoleGuest: {
		CanViewDashboard: true,
	},
}

// PermissionsFor falls back to guest permissions for unknown roles.
func PermissionsFor(r Role) Permissions {
	if p, ok := rolePermissions[r]; ok {
		return p
	}
	return rolePermissions[RoleGuest]
}

// SessionUser is the identity carried by a dashboard session token.
type SessionUser struct {
	Login     string      `json:"login"`
	ID        int64       `json:"id"`
	AvatarURL string      `json:"avatar_url"`
	Email     *string     `json:"email"`
	Name      *string     `json:"name"`
	Role      Role        `json:"role"`
	Perms     Permissions `json:"permissions"`
}
