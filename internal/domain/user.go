package domain

import "strings"

// Role is the platform role carried by an authenticated user
type Role string

const (
	RolePatient    Role = "PATIENT"
	RolePharmacist Role = "PHARMACIST"
	RoleAdmin      Role = "ADMIN"
	RoleProvider   Role = "PROVIDER"
)

// Valid reports whether r is one of the roles issued by the auth service
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RolePharmacist, RoleAdmin, RoleProvider:
		return true
	}
	return false
}

// User is the identity returned by the auth service on login
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// DisplayName returns the user's full name, falling back to the email address
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Session is the client-side authentication state.
// User and Token are always set and cleared together.
type Session struct {
	User  *User
	Token string
}

// IsAuthenticated reports whether both halves of the session are present
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// LoginRequest is the credential payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role"`
}

// Validate checks the fields the auth service requires
func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return ErrInvalidCredentials
	}
	if !r.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// LoginResponse is the auth service's login/register result
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
