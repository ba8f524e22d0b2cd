package models

import "time"

// Role is the authorization level of a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStandard
}

// User represents an account entity used for authentication and for scoping
// which transactions a caller can see.
// PasswordHash must never leave trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// Role is either admin or standard.
	Role Role `json:"role"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is an optional contact address.
	Email string `json:"email"`

	// Active users are the only ones allowed to authenticate.
	Active bool `json:"active"`

	// Group is the sharing group identifier.
	Group string `json:"group"`

	// Shared makes the user's transactions visible to the whole group and the
	// group's shared transactions visible to the user.
	Shared bool `json:"shared"`

	// MayShare is the capability flag allowing the user to join a shared base.
	MayShare bool `json:"may_share"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// LastLoginAt is the timestamp of the last successful authentication.
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Context returns the visibility scope of u.
func (u User) Context() UserContext {
	return UserContext{
		ID:     u.ID,
		Role:   u.Role,
		Group:  u.Group,
		Shared: u.Shared,
	}
}

// UserContext is the resolved identity supplied to every store call.
type UserContext struct {
	ID     int64  `json:"id"`
	Role   Role   `json:"role"`
	Group  string `json:"group"`
	Shared bool   `json:"shared"`
}

// IsAdmin reports whether the caller has the admin role.
func (c UserContext) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// NewUser is the admin's request to create an account.
type NewUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Group    string `json:"group"`
	Shared   bool   `json:"shared"`
}

// Credentials is a login attempt.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PasswordChange is a user's request to replace their own password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// GroupChange moves a user to another sharing group.
type GroupChange struct {
	Group  string `json:"group"`
	Shared bool   `json:"shared"`
}
