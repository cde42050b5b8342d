package pubsub

import "time"

// SessionEvent is published on the auth topics.
type SessionEvent struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	IP     string    `json:"ip,omitempty"`
	At     time.Time `json:"at"`
}

// ConsentChangedEvent is published after a consent grant or revoke is stored.
type ConsentChangedEvent struct {
	UserID  string    `json:"user_id"`
	Type    string    `json:"type"`
	Action  string    `json:"action"`
	Granted bool      `json:"granted"`
	At      time.Time `json:"at"`
}
