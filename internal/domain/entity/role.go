// Package entity contains the core business objects of the storefront.
package entity

// Role is the capability level of an account.
type Role string

const (
	// RoleUser is a shopper.
	RoleUser Role = "user"
	// RoleAdmin can use the back office.
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role grants back-office access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
