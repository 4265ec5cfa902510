package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-api-signup/internal/domain"
	"github.com/go-api-signup/internal/pkg/identifier"
	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New(validator.WithRequiredStructEnabled())

func init() {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	mustRegister("has_upper", hasRune(inRange('A', 'Z')))
	mustRegister("has_lower", hasRune(inRange('a', 'z')))
	mustRegister("has_digit", hasRune(inRange('0', '9')))
	mustRegister("phone", func(fl validator.FieldLevel) bool {
		return identifier.IsPhone(fl.Field().String())
	})
	// password expands to the full policy so each failure keeps its own tag.
	v.RegisterAlias("password", "min=8,max=18,has_upper,has_lower,has_digit")

	v.RegisterStructValidation(registerRequestRules, domain.RegisterRequest{})
	v.RegisterStructValidation(confirmOTPRules, domain.ConfirmOTPRequest{})
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validate: register " + tag + ": " + err.Error())
	}
}

// inRange matches ASCII letters and digits only.
func inRange(lo, hi rune) func(rune) bool {
	return func(r rune) bool { return lo <= r && r <= hi }
}

func hasRune(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if pred(r) {
				return true
			}
		}
		return false
	}
}

func registerRequestRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(domain.RegisterRequest)
	hasEmail := req.Email != nil && *req.Email != ""
	hasPhone := req.PhoneNumber != nil && *req.PhoneNumber != ""
	if !hasEmail && !hasPhone {
		sl.ReportError(req.Email, "email", "Email", "email_or_phone", "")
		return
	}
	if req.WantsOTP() {
		return
	}
	if req.Password == nil || *req.Password == "" {
		sl.ReportError(req.Password, "password", "Password", "required", "")
		return
	}
	if req.ConfirmPassword == nil || *req.ConfirmPassword != *req.Password {
		sl.ReportError(req.ConfirmPassword, "confirmPassword", "ConfirmPassword", "eq_password", "")
	}
}

func confirmOTPRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(domain.ConfirmOTPRequest)
	if req.ConfirmPassword != req.Password {
		sl.ReportError(req.ConfirmPassword, "confirmPassword", "ConfirmPassword", "eq_password", "")
	}
}

var tagRules = map[string]domain.Rule{
	"required":       domain.RuleRequired,
	"email":          domain.RuleEmail,
	"phone":          domain.RulePhone,
	"min":            domain.RulePasswordLength,
	"max":            domain.RulePasswordLength,
	"has_upper":      domain.RulePasswordUppercase,
	"has_lower":      domain.RulePasswordLowercase,
	"has_digit":      domain.RulePasswordDigit,
	"eq_password":    domain.RulePasswordMismatch,
	"email_or_phone": domain.RuleEmailOrPhone,
}

// Struct validates the given struct using its validate tags and the struct
// rules registered above. It returns nil or a *domain.ValidationError
// describing the first violation.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	fe := ve[0]
	rule, ok := tagRules[fe.ActualTag()]
	if !ok {
		rule = domain.RuleMalformed
	}
	return &domain.ValidationError{Field: fe.Field(), Rule: rule}
}
