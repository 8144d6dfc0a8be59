package models

const RoleAdmin = "ADMIN"

// User is the identity extracted from the bearer token payload. It exists
// for display and role gating only; the backend is the authority on access.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
