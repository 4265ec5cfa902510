package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Account is a row of the users table. PasswordHash is NULL only while the
// account is pending OTP confirmation, in which case Active is false.
type Account struct {
	ID           int64
	Username     string
	Email        *string
	MobileNumber *string
	PasswordHash *string
	CountryID    *int64
	StateID      *int64
	CityID       *int64
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Pending reports whether the account still waits for OTP confirmation.
func (a *Account) Pending() bool { return !a.Active && a.PasswordHash == nil }

// PhoneNumber is a mobile number. It decodes from a JSON string or a JSON
// number so that clients sending `"phoneNumber": 5551234567` keep working.
type PhoneNumber string

func (p *PhoneNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PhoneNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("phoneNumber must be a string or a number: %w", err)
	}
	*p = PhoneNumber(n.String())
	return nil
}

// RegisterRequest is the inbound signup payload.
type RegisterRequest struct {
	FullName        string       `json:"fullName" validate:"required"`
	Email           *string      `json:"email" validate:"omitempty,email"`
	Password        *string      `json:"password" validate:"omitempty,password"`
	ConfirmPassword *string      `json:"confirmPassword"`
	PhoneNumber     *PhoneNumber `json:"phoneNumber" validate:"omitempty,phone"`
	Country         *string      `json:"country"`
	State           *string      `json:"state"`
	City            *string      `json:"city"`
}

// Normalize treats empty strings as absent fields so that `"email": ""`
// means the same as omitting email.
func (r *RegisterRequest) Normalize() {
	for _, f := range []**string{&r.Email, &r.Password, &r.ConfirmPassword, &r.Country, &r.State, &r.City} {
		if *f != nil && **f == "" {
			*f = nil
		}
	}
	if r.PhoneNumber != nil && *r.PhoneNumber == "" {
		r.PhoneNumber = nil
	}
}

// WantsOTP reports whether the request is an OTP registration: a phone
// number without a password.
func (r *RegisterRequest) WantsOTP() bool {
	return r.PhoneNumber != nil && *r.PhoneNumber != "" && (r.Password == nil || *r.Password == "")
}

// Location returns the location names carried by the request.
func (r *RegisterRequest) Location() LocationNames {
	return LocationNames{Country: r.Country, State: r.State, City: r.City}
}

// ConfirmOTPRequest completes a pending OTP registration and sets the password.
type ConfirmOTPRequest struct {
	PhoneNumber     PhoneNumber `json:"phoneNumber" validate:"required,phone"`
	OTP             string      `json:"otp" validate:"required,numeric,len=6"`
	Password        string      `json:"password" validate:"required,password"`
	ConfirmPassword string      `json:"confirmPassword" validate:"required"`
}

// RegisteredUser is the public view of a freshly created account.
type RegisteredUser struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Email        *string `json:"email"`
	MobileNumber *string `json:"mobile_number"`
	Country      *string `json:"country"`
	State        *string `json:"state"`
	City         *string `json:"city"`
}

// RegistrationResult is the outcome of a successful Register call. User is
// nil on the OTP path.
type RegistrationResult struct {
	Message string
	User    *RegisteredUser
}
