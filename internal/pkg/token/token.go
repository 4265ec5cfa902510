package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewOTP returns a uniformly random numeric code of the given length,
// zero-padded, drawn from crypto/rand.
func NewOTP(digits int) (string, error) {
	if digits < 1 || digits > 18 {
		return "", fmt.Errorf("generate otp: invalid length %d", digits)
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}
