package models

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginResponse is returned on successful authentication; the bearer token
// is additionally sent in the Authorization header.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// StatusChange activates or deactivates a user.
type StatusChange struct {
	Active bool `json:"active"`
}

// RoleChange sets a user's role.
type RoleChange struct {
	Role Role `json:"role"`
}
