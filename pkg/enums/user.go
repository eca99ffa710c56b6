package enums

import "fmt"

// UserRole controls what a dashboard account is allowed to manage.
type UserRole string

const (
	UserRoleAdmin           UserRole = "admin"
	UserRolePropertyManager UserRole = "property_manager"
	UserRoleCleaner         UserRole = "cleaner"
	UserRoleMaintenance     UserRole = "maintenance"
	UserRoleInspector       UserRole = "inspector"
)

var validUserRoles = []UserRole{
	UserRoleAdmin,
	UserRolePropertyManager,
	UserRoleCleaner,
	UserRoleMaintenance,
	UserRoleInspector,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
