package models

import "time"

// RateLimitAttempt is one row in the append-only attempt log. Rows are never
// updated or deleted; counting rows within a trailing window is the
// enforcement signal.
type RateLimitAttempt struct {
	ID        string    `bson:"id" json:"id"`
	Key       string    `bson:"key" json:"key"`   // "email:<addr>" or "fp:<sha256 hex>"
	Kind      string    `bson:"kind" json:"kind"` // "intake" today; namespaced for future surfaces
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// RateLimitStatus is the remaining-attempts telemetry returned to callers.
type RateLimitStatus struct {
	WindowMinutes     int `json:"windowMinutes"`
	MaxAttempts       int `json:"maxAttempts"`
	AttemptsRemaining int `json:"attemptsRemaining"`
}
