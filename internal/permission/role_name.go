package permission

import "strings"

// RoleName is the closed set of role names that routes can be gated on.
// Roles created by administrators with other names parse to RoleCustom,
// which never satisfies a role requirement.
type RoleName int

const (
	RoleCustom RoleName = iota
	RoleSuperAdmin
	RoleAdmin
	RoleManager
	RoleAccountant
	RoleSalesRep
)

var roleNames = map[RoleName]string{
	RoleSuperAdmin: "Super Admin",
	RoleAdmin:      "Admin",
	RoleManager:    "Manager",
	RoleAccountant: "Accountant",
	RoleSalesRep:   "Sales Rep",
}

func (r RoleName) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}

	return "custom"
}

// ParseRoleName maps a stored role name onto the enumeration, ignoring case and
// surrounding whitespace.
func ParseRoleName(s string) RoleName {
	s = strings.TrimSpace(s)
	for r, name := range roleNames {
		if strings.EqualFold(name, s) {
			return r
		}
	}

	return RoleCustom
}

// RoleSet is a route-level role requirement.
type RoleSet []RoleName

// AdminRoles may administer users, roles, permissions and settings.
var AdminRoles = RoleSet{RoleSuperAdmin, RoleAdmin}

func (s RoleSet) Contains(r RoleName) bool {
	if r == RoleCustom {
		return false
	}

	for _, candidate := range s {
		if candidate == r {
			return true
		}
	}

	return false
}
