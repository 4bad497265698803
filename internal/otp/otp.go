// Package otp generates short-lived one-time codes for email verification
// and password resets.
package otp

import (
	"time"

	"github.com/skilltrackhq/backend/internal/common"
)

// codeBytes random bytes, hex-encoded, yield a 6-character code.
const codeBytes = 3

// New returns a fresh one-time code and its expiry timestamp (now + ttl).
// The code is drawn from crypto/rand; issuing a new code implicitly
// invalidates whatever code was pending before it.
func New(ttl time.Duration) (string, time.Time, error) {
	code, err := common.MakeRandHexString(codeBytes)
	if err != nil {
		return "", time.Time{}, err
	}
	return code, time.Now().Add(ttl), nil
}

// Expired reports whether the given expiry timestamp has passed.
// A nil expiry counts as expired: there is no pending code.
func Expired(expiry *time.Time, now time.Time) bool {
	if expiry == nil {
		return true
	}
	return now.After(*expiry)
}
