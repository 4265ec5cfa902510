package domain

// VerificationOTP is the verification type used for phone signup codes.
const VerificationOTP = "otp"

// UserVerification stores OTP codes for pending accounts.
// PK: user_id, SK: type.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type UserVerification struct {
	UserID    string `json:"user_id" dynamodbav:"user_id"`
	Type      string `json:"type" dynamodbav:"type"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
