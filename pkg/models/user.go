package models

import "time"

// Role is the access level of an account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName joins first and last name for display and token claims.
func (u *User) FullName() string {
	return u.Firstname + " " + u.Lastname
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        int        `json:"id"`
	Email     string     `json:"email"`
	Firstname string     `json:"firstname"`
	Lastname  string     `json:"lastname"`
	Role      Role       `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	Locations []Location `json:"locations,omitempty"`
}

// PublicView strips the credential fields from a user.
func (u *User) PublicView() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// RegistrationRequest is a self-service sign-up. The role is always USER.
type RegistrationRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=16"`
	Firstname string `json:"firstname" validate:"required,min=1,max=12"`
	Lastname  string `json:"lastname" validate:"required,min=1,max=16"`
}

// UserCreateEditRequest is the admin-side create/update payload. Unlike
// self-registration the role is settable. Password is optional on update.
type UserCreateEditRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"omitempty,min=8,max=16"`
	Firstname string `json:"firstname" validate:"required,min=1,max=12"`
	Lastname  string `json:"lastname" validate:"required,min=1,max=16"`
	Role      Role   `json:"role" validate:"required,oneof=USER ADMIN"`
}

// AuthenticationRequest carries login credentials.
type AuthenticationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthenticationResponse carries the issued bearer token.
type AuthenticationResponse struct {
	Token string `json:"token"`
}

// UserSearchFilter narrows the admin user listing.
type UserSearchFilter struct {
	Email     string
	Lastname  string
	CreatedAt *time.Time
}
