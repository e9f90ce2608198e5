package models

import (
	"errors"
	"testing"
)

// TestRegistrationValidate verifies the field checks applied before an
// account is created.
func TestRegistrationValidate(t *testing.T) {
	valid := Registration{Username: "xavi", Email: "xavi@example.com", Password: "secret1", ConfirmPassword: "secret1"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid registration rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Registration)
	}{
		{"missing username", func(r *Registration) { r.Username = "" }},
		{"missing email", func(r *Registration) { r.Email = "" }},
		{"missing confirmation", func(r *Registration) { r.ConfirmPassword = "" }},
		{"mismatched passwords", func(r *Registration) { r.ConfirmPassword = "secret2" }},
		{"short password", func(r *Registration) { r.Password, r.ConfirmPassword = "abc12", "abc12" }},
		{"malformed email", func(r *Registration) { r.Email = "not-an-address" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

// TestRegistrationNormalize verifies surrounding whitespace is dropped so a
// padded username is not a distinct account.
func TestRegistrationNormalize(t *testing.T) {
	r := Registration{Username: "  xavi ", Email: " x@example.com\t"}
	r.Normalize()
	if r.Username != "xavi" || r.Email != "x@example.com" {
		t.Errorf("normalized = %q, %q", r.Username, r.Email)
	}
}
