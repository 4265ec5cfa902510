package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrUnavailable  = errors.New("downstream unavailable")
)

// Location errors. Each one is also an ErrBadRequest.
var (
	ErrInvalidCountry      error = badRequest("invalid country")
	ErrInvalidState        error = badRequest("invalid state")
	ErrInvalidCity         error = badRequest("invalid city")
	ErrStateWithoutCountry error = badRequest("state provided but no valid country specified")
	ErrCityWithoutParent   error = badRequest("city provided but no valid state or country specified")
)

// badRequest is a sentinel whose message is shown to clients as-is.
type badRequest string

func (e badRequest) Error() string { return string(e) }
func (e badRequest) Unwrap() error { return ErrBadRequest }

// Rule enumerates the registration validation failures.
type Rule string

const (
	RuleRequired          Rule = "required"
	RuleEmail             Rule = "email"
	RulePhone             Rule = "phone"
	RulePasswordLength    Rule = "password_length"
	RulePasswordUppercase Rule = "password_uppercase"
	RulePasswordLowercase Rule = "password_lowercase"
	RulePasswordDigit     Rule = "password_digit"
	RulePasswordMismatch  Rule = "password_mismatch"
	RuleEmailOrPhone      Rule = "email_or_phone"
	RuleMalformed         Rule = "malformed"
)

var ruleMessages = map[Rule]string{
	RuleRequired:          "is required",
	RuleEmail:             "must be a valid email address",
	RulePhone:             "must be a phone number of 10 to 15 digits, optionally prefixed with +",
	RulePasswordLength:    "must be between 8 and 18 characters",
	RulePasswordUppercase: "must contain at least one uppercase letter",
	RulePasswordLowercase: "must contain at least one lowercase letter",
	RulePasswordDigit:     "must contain at least one number",
	RulePasswordMismatch:  "password and confirmPassword do not match",
	RuleEmailOrPhone:      "either email or phoneNumber must be provided",
	RuleMalformed:         "is malformed",
}

// ValidationError reports the first rule a request violated.
// It unwraps to ErrBadRequest.
type ValidationError struct {
	Field string
	Rule  Rule
}

func (e *ValidationError) Error() string {
	msg, ok := ruleMessages[e.Rule]
	if !ok {
		msg = string(e.Rule)
	}
	switch e.Rule {
	case RulePasswordMismatch, RuleEmailOrPhone:
		return msg
	}
	return e.Field + " " + msg
}

func (e *ValidationError) Unwrap() error { return ErrBadRequest }
