package models

import "time"

// CalendarEvent is a timed event read back from the external calendar,
// already clamped to the scheduling window. All-day events never appear
// here; they do not consume slots.
type CalendarEvent struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// Account links a user to their OAuth provider credentials. Scheduling
// requires a Google-linked account with a usable access token.
type Account struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	ProviderID   string     `json:"provider_id"`
	AccessToken  string     `json:"-"`
	RefreshToken string     `json:"-"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}
