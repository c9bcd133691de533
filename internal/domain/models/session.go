package models

import "time"

// Session is a server-side login session. The session id travels inside the
// JWT as the "sid" claim; logout deletes the row, which invalidates the token
// even before it expires.
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
