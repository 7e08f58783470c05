package models

import "time"

// LoginThrottle is the per-identity failure record backing account lockout.
// One document per email, upserted on every attempt. LockedUntil doubles as
// the TTL field: the store reaps the document once the lockout has passed.
type LoginThrottle struct {
	Email          string     `bson:"email"`
	FailedAttempts int        `bson:"failed_attempts"`
	LockedUntil    *time.Time `bson:"locked_until,omitempty"`
	LastAttempt    time.Time  `bson:"last_attempt"`
	LastIP         string     `bson:"last_ip,omitempty"`
}
