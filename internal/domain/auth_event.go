package domain

import (
	"context"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// AuthEventKind names a session lifecycle event.
type AuthEventKind string

const (
	AuthLinkRequested  AuthEventKind = "link_requested"
	AuthSessionCreated AuthEventKind = "session_created"
	AuthSessionDeleted AuthEventKind = "session_deleted"
)

// AuthEvent is an append-only record of sign-in activity.
type AuthEvent struct {
	UserID string                       `json:"user_id"`
	Kind   AuthEventKind                `json:"kind"`
	At     surrealmodels.CustomDateTime `json:"at"`
	IP     string                       `json:"ip,omitempty"`
}

// AuthEventRepository persists auth events.
type AuthEventRepository interface {
	Append(ctx context.Context, event AuthEvent) error
}
