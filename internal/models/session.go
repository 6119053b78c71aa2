package models

import (
	"time"
)

// Session is an ephemeral authentication proof bound to one user. The
// fingerprint captures the client context at login; any mismatch on a later
// request invalidates the session immediately.
type Session struct {
	Token       string    `json:"token"`
	UserID      uint      `json:"user_id"`
	StudentID   string    `json:"student_id"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the fixed session lifetime has elapsed.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
