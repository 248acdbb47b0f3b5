package models

// Role is the coarse permission level of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the authenticated principal behind a request.
type Identity struct {
	UserID   uint
	Username string
	Role     Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// OwnerScope returns the user id that order queries must be restricted to,
// or nil when the identity may see every order.
func (i Identity) OwnerScope() *uint {
	if i.IsAdmin() {
		return nil
	}
	id := i.UserID
	return &id
}

// CanAccess reports whether the identity may read or modify an order owned by ownerID.
func (i Identity) CanAccess(ownerID uint) bool {
	return i.IsAdmin() || i.UserID == ownerID
}
