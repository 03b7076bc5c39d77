package models

import "time"

// VerificationCode is one issued email-verification code. Multiple
// outstanding codes per email are allowed; verification matches the most
// recently created row for (email, code).
type VerificationCode struct {
	ID         string     `bson:"id" json:"id"`
	Email      string     `bson:"email" json:"email"`
	Code       string     `bson:"code" json:"-"` // 6-digit numeric code
	CreatedAt  time.Time  `bson:"created_at" json:"createdAt"`
	ExpiresAt  time.Time  `bson:"expires_at" json:"expiresAt"`
	VerifiedAt *time.Time `bson:"verified_at,omitempty" json:"verifiedAt,omitempty"`
	UsedAt     *time.Time `bson:"used_at,omitempty" json:"usedAt,omitempty"`
}

// IsExpired reports whether the code can no longer be verified.
func (v *VerificationCode) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// IsVerified reports whether the code has been verified at least once.
func (v *VerificationCode) IsVerified() bool {
	return v.VerifiedAt != nil
}

// IsUsed reports whether a booking intake has consumed this verification.
func (v *VerificationCode) IsUsed() bool {
	return v.UsedAt != nil
}
