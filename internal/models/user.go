package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// User is a registered account. Body metrics are zero until the user records
// them.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	HeightCm  float64   `json:"height_cm"`
	WeightKg  float64   `json:"weight_kg"`
	BMI       float64   `json:"bmi"`
	CreatedAt time.Time `json:"created_at"`
}

// HasBodyMetrics reports whether height and weight have been recorded.
func (u *User) HasBodyMetrics() bool {
	return u.HeightCm > 0 && u.WeightKg > 0
}

// Registration is a request to create an account.
type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Normalize trims the username and email.
func (r *Registration) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate checks the fields a registration must carry. It does not check
// uniqueness; the account store does that.
func (r Registration) Validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" || r.ConfirmPassword == "" {
		return fmt.Errorf("%w: all registration fields are required", ErrInvalidArgument)
	}
	if r.Password != r.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", ErrInvalidArgument)
	}
	if len(r.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidArgument, MinPasswordLength)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidArgument, r.Email)
	}
	return nil
}
