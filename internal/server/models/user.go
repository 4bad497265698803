// Package models defines the persistent server-side data structures.
package models

import "time"

// User is the identity + credential + verification record. Password holds
// the argon2id hash, never the plaintext. OTP and OTPExpiry are set together
// and cleared together; a pending code whose expiry has passed is invalid
// but is not purged by any background job.
type User struct {
	ID             string
	Name           string
	Email          string
	Password       string
	Age            int
	DOB            time.Time
	Reason         string
	Score          int
	TotalTestTaken int
	CurrentTrack   string
	EmailVerified  bool
	OTP            *string
	OTPExpiry      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicUser is the JSON view of a user with the credential fields stripped.
type PublicUser struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Age            int       `json:"age"`
	DOB            time.Time `json:"dob"`
	Reason         string    `json:"reason"`
	Score          int       `json:"score"`
	TotalTestTaken int       `json:"total_test_taken"`
	CurrentTrack   string    `json:"current_track"`
	EmailVerified  bool      `json:"email_verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Sanitized returns the user without password hash or pending codes.
func (u *User) Sanitized() *PublicUser {
	return &PublicUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Age:            u.Age,
		DOB:            u.DOB,
		Reason:         u.Reason,
		Score:          u.Score,
		TotalTestTaken: u.TotalTestTaken,
		CurrentTrack:   u.CurrentTrack,
		EmailVerified:  u.EmailVerified,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
