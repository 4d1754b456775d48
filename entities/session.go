package entities

import "time"

// Session is one server-side login session, keyed by the random token stored
// in the browser cookie.
type Session struct {
	Token     string    `gorm:"primaryKey;size:36" json:"token"`
	UserID    uint      `gorm:"index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
