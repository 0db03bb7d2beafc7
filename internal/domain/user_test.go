package domain

import (
	"errors"
	"testing"
)

func TestRole_Valid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RolePatient, true},
		{RolePharmacist, true},
		{RoleAdmin, true},
		{RoleProvider, true},
		{"patient", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_IsAuthenticated(t *testing.T) {
	user := &User{ID: "u1", Email: "a@b.c", Role: RolePatient}

	tests := []struct {
		name    string
		session Session
		want    bool
	}{
		{"empty", Session{}, false},
		{"user only", Session{User: user}, false},
		{"token only", Session{Token: "tok"}, false},
		{"both", Session{User: user, Token: "tok"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.IsAuthenticated(); got != tt.want {
				t.Errorf("IsAuthenticated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUser_DisplayName(t *testing.T) {
	u := &User{Email: "jane@example.com"}
	if got := u.DisplayName(); got != "jane@example.com" {
		t.Errorf("DisplayName() = %q, want email fallback", got)
	}

	u.FirstName = "Jane"
	u.LastName = "Doe"
	if got := u.DisplayName(); got != "Jane Doe" {
		t.Errorf("DisplayName() = %q, want %q", got, "Jane Doe")
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	if err := (LoginRequest{Email: "a@b.c", Password: "pw"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (LoginRequest{Email: "  ", Password: "pw"}).Validate(); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Validate() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	req := RegisterRequest{Email: "a@b.c", Password: "pw", Role: "NURSE"}
	if err := req.Validate(); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("Validate() error = %v, want ErrInvalidRole", err)
	}

	req.Role = RolePatient
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
