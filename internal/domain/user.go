package domain

// Role is the access level of a user account.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleResident   Role = "resident"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleResident:
		return true
	}
	return false
}

// HomePath is the dashboard each role lands on after login.
func (r Role) HomePath() string {
	switch r {
	case RoleSuperAdmin:
		return "/superadmin"
	case RoleAdmin:
		return "/admin"
	default:
		return "/resident"
	}
}

// User is a login account. Passwords are stored and compared in plain text:
// this system is an explicit simulation, not a security boundary.
// ComplexID is empty for superadmins; HouseNumber is set for residents only.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	ComplexID   string `json:"complexId,omitempty"`
	HouseNumber string `json:"houseNumber,omitempty"`
}
