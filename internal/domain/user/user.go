package user

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	// Hash of the one currently valid refresh token; nil means no active
	// session. Overwritten on every login, which is what invalidates the
	// previous session.
	RefreshTokenHash *string   `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Profile is the public snapshot of a user that gets embedded in tokens and
// returned from the auth endpoints.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) Profile() Profile {
	return Profile{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
