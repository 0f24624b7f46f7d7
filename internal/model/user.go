package model

import "time"

// Role is the account type chosen at signup.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleEmployer
}

// User represents a user in the database.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// SignupRequest represents a signup request body.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginRequest represents a login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the user shape returned by signup and login.
type UserSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// UserProfile is the user shape returned by /api/auth/me.
type UserProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuthResult is returned by the auth service; the token travels in a cookie, never the body.
type AuthResult struct {
	Token string
	User  UserSummary
}

// AuthResponse is the JSON body of a successful signup or login.
type AuthResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}
