package validate

import (
	"errors"
	"testing"

	"github.com/go-api-signup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func emailReq(pw, confirm string) domain.RegisterRequest {
	return domain.RegisterRequest{
		FullName:        "Alice Smith",
		Email:           ptr("alice@example.com"),
		Password:        ptr(pw),
		ConfirmPassword: ptr(confirm),
	}
}

func requireRule(t *testing.T, err error, field string, rule domain.Rule) {
	t.Helper()
	require.Error(t, err)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected *domain.ValidationError, got %T", err)
	assert.Equal(t, field, ve.Field)
	assert.Equal(t, rule, ve.Rule)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestRegisterRequest_Valid(t *testing.T) {
	req := emailReq("Password1", "Password1")
	assert.NoError(t, Struct(&req))
}

func TestRegisterRequest_PasswordPolicy(t *testing.T) {
	cases := []struct {
		pw   string
		rule domain.Rule
	}{
		{"password1", domain.RulePasswordUppercase},
		{"PASSWORD1", domain.RulePasswordLowercase},
		{"Password", domain.RulePasswordDigit},
		{"passwordÄ1", domain.RulePasswordUppercase},
		{"PASSWORDé1", domain.RulePasswordLowercase},
		{"Passwordx١", domain.RulePasswordDigit},
		{"Pass1", domain.RulePasswordLength},
		{"Password1234567890X", domain.RulePasswordLength},
	}
	for _, tc := range cases {
		t.Run(tc.pw, func(t *testing.T) {
			req := emailReq(tc.pw, tc.pw)
			requireRule(t, Struct(&req), "password", tc.rule)
		})
	}
}

func TestRegisterRequest_PasswordBoundaries(t *testing.T) {
	for _, pw := range []string{"Abcdefg1", "Abcdefghijklmnop12"} {
		req := emailReq(pw, pw)
		assert.NoError(t, Struct(&req), pw)
	}
}

func TestRegisterRequest_ConfirmationMismatch(t *testing.T) {
	req := emailReq("Password1", "Password2")
	requireRule(t, Struct(&req), "confirmPassword", domain.RulePasswordMismatch)
}

func TestRegisterRequest_ConfirmationMissing(t *testing.T) {
	req := emailReq("Password1", "")
	req.ConfirmPassword = nil
	requireRule(t, Struct(&req), "confirmPassword", domain.RulePasswordMismatch)
}

func TestRegisterRequest_EmailWithoutPassword(t *testing.T) {
	req := domain.RegisterRequest{FullName: "Alice", Email: ptr("alice@example.com")}
	requireRule(t, Struct(&req), "password", domain.RuleRequired)
}

func TestRegisterRequest_InvalidEmail(t *testing.T) {
	req := emailReq("Password1", "Password1")
	req.Email = ptr("not-an-email")
	requireRule(t, Struct(&req), "email", domain.RuleEmail)
}

func TestRegisterRequest_MissingFullName(t *testing.T) {
	req := emailReq("Password1", "Password1")
	req.FullName = ""
	requireRule(t, Struct(&req), "fullName", domain.RuleRequired)
}

func TestRegisterRequest_NeitherEmailNorPhone(t *testing.T) {
	req := domain.RegisterRequest{FullName: "Alice", Password: ptr("Password1"), ConfirmPassword: ptr("Password1")}
	requireRule(t, Struct(&req), "email", domain.RuleEmailOrPhone)
}

func TestRegisterRequest_PhoneOnlySkipsPasswordChecks(t *testing.T) {
	phone := domain.PhoneNumber("+15551234567")
	req := domain.RegisterRequest{FullName: "Bob", PhoneNumber: &phone}
	assert.NoError(t, Struct(&req))
}

func TestRegisterRequest_InvalidPhone(t *testing.T) {
	phone := domain.PhoneNumber("12345")
	req := domain.RegisterRequest{FullName: "Bob", PhoneNumber: &phone}
	requireRule(t, Struct(&req), "phoneNumber", domain.RulePhone)
}

func TestConfirmOTPRequest(t *testing.T) {
	ok := domain.ConfirmOTPRequest{
		PhoneNumber: "+15551234567", OTP: "123456", Password: "Password1", ConfirmPassword: "Password1",
	}
	assert.NoError(t, Struct(&ok))

	mismatch := ok
	mismatch.ConfirmPassword = "Password2"
	requireRule(t, Struct(&mismatch), "confirmPassword", domain.RulePasswordMismatch)

	badOTP := ok
	badOTP.OTP = "12ab56"
	requireRule(t, Struct(&badOTP), "otp", domain.RuleMalformed)

	weak := ok
	weak.Password, weak.ConfirmPassword = "password1", "password1"
	requireRule(t, Struct(&weak), "password", domain.RulePasswordUppercase)
}
