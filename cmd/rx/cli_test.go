package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
	"github.com/felixgeelhaar/rxclient/internal/domain"
)

func TestParseProfileUpdate(t *testing.T) {
	req, err := parseProfileUpdate([]string{"city=Pune", "gender=female", "allergies=penicillin, latex,", "zip=411001"})
	if err != nil {
		t.Fatalf("parseProfileUpdate() error = %v", err)
	}
	if req.City == nil || *req.City != "Pune" {
		t.Errorf("City = %v", req.City)
	}
	if req.Gender == nil || *req.Gender != domain.GenderFemale {
		t.Errorf("Gender = %v", req.Gender)
	}
	if req.PostalCode == nil || *req.PostalCode != "411001" {
		t.Errorf("PostalCode = %v", req.PostalCode)
	}
	if len(req.Allergies) != 2 || req.Allergies[1] != "latex" {
		t.Errorf("Allergies = %v", req.Allergies)
	}
	if req.FirstName != nil {
		t.Error("FirstName should be untouched")
	}
}

func TestParseProfileUpdate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
	}{
		{"empty", nil},
		{"no equals", []string{"city"}},
		{"unknown field", []string{"shoe=42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseProfileUpdate(tt.pairs); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"12", 12, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"two", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseQuantity(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseQuantity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, domain.ErrInvalidQuantity) {
				t.Errorf("error = %v, want ErrInvalidQuantity", err)
			}
			if got != tt.want {
				t.Errorf("parseQuantity(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestReloginNavigator(t *testing.T) {
	var buf bytes.Buffer
	nav := reloginNavigator{out: &buf}

	nav.Navigate("/somewhere")
	if buf.Len() != 0 {
		t.Errorf("unexpected output for other route: %q", buf.String())
	}

	nav.Navigate(apiclient.LoginRoute)
	if !strings.Contains(buf.String(), "rx login") {
		t.Errorf("output = %q, want re-login hint", buf.String())
	}
}
