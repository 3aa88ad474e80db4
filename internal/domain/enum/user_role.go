package enum

// UserRole controls what administrative surface a user can reach.
type UserRole string

const (
	RoleSuperAdmin    UserRole = "SUPER_ADMIN"
	RoleBusinessOwner UserRole = "BUSINESS_OWNER"
	RoleEmployee      UserRole = "EMPLOYEE"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleBusinessOwner, RoleEmployee:
		return true
	}
	return false
}
