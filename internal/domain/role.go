package domain

// Role is the closed set of account roles.
type Role string

const (
	RoleUser      Role = "user"      // Default role at signup
	RoleModerator Role = "moderator" // May edit or delete any review or comment
	RoleAdmin     Role = "admin"     // Manages the catalog and user accounts
)

// Roles lists every valid role.
var Roles = []Role{RoleUser, RoleModerator, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may act on content written by others.
func (r Role) IsStaff() bool {
	return r == RoleModerator || r == RoleAdmin
}
