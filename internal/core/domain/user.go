package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ClampRole maps registration input onto the role allow-list.
func ClampRole(role string) string {
	switch role {
	case RoleAdmin, RoleUser:
		return role
	default:
		return RoleUser
	}
}

// Account models a registered user.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the account holds the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Claims is the verified identity carried by a bearer token. Only the token
// verifier constructs it.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}
