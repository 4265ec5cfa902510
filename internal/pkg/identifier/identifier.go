// Package identifier classifies sign-in identifiers.
package identifier

import "regexp"

// Kind is the closed set of identifier classes.
type Kind int

const (
	Unknown Kind = iota
	Email
	Phone
)

func (k Kind) String() string {
	switch k {
	case Email:
		return "email"
	case Phone:
		return "phone"
	default:
		return "unknown"
	}
}

var (
	// Letters and digits from any script, matching word characters in
	// addresses such as josé@example.com.
	emailPattern = regexp.MustCompile(`^[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
)

// Classify returns Email, Phone or Unknown. The email pattern wins when both match.
func Classify(s string) Kind {
	switch {
	case emailPattern.MatchString(s):
		return Email
	case phonePattern.MatchString(s):
		return Phone
	default:
		return Unknown
	}
}

// IsPhone reports whether s is an optional + followed by 10 to 15 digits.
func IsPhone(s string) bool { return phonePattern.MatchString(s) }
