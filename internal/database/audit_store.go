package database

import (
	"context"

	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
)

// AuditStore appends auth events.
type AuditStore struct {
	events Client[domain.AuthEvent]
}

var _ domain.AuthEventRepository = (*AuditStore)(nil)

// NewAuditStore creates an AuditStore.
func NewAuditStore(conn *Connection, cfg config.Provider, opts ...ClientOption[domain.AuthEvent]) (*AuditStore, error) {
	events, err := NewClient(conn, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &AuditStore{events: events}, nil
}

func (s *AuditStore) Append(ctx context.Context, event domain.AuthEvent) error {
	content := map[string]any{
		"user_id": event.UserID,
		"kind":    string(event.Kind),
	}
	if !event.At.IsZero() {
		content["at"] = event.At
	}
	if event.IP != "" {
		content["ip"] = event.IP
	}
	if err := s.events.Execute(ctx, "CREATE auth_event CONTENT $event", map[string]any{"event": content}); err != nil {
		return WrapError(err, "append auth event")
	}
	return nil
}
