package database

import (
	"context"
	"fmt"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
)

const recordConsentQuery = `BEGIN TRANSACTION;
CREATE consent_event CONTENT $event;
UPSERT type::thing('consent', [$user, $type]) SET
	user = $user,
	type = $type,
	granted = $granted,
	updated_at = time::now();
COMMIT TRANSACTION;`

// ConsentStore implements domain.ConsentRepository.
type ConsentStore struct {
	states Client[domain.ConsentState]
	events Client[domain.ConsentEvent]
}

var _ domain.ConsentRepository = (*ConsentStore)(nil)

// NewConsentStore creates a ConsentStore. Executors may be overridden in tests.
func NewConsentStore(conn *Connection, cfg config.Provider, stateOpts []ClientOption[domain.ConsentState], eventOpts []ClientOption[domain.ConsentEvent]) (*ConsentStore, error) {
	states, err := NewClient(conn, cfg, stateOpts...)
	if err != nil {
		return nil, err
	}
	events, err := NewClient(conn, cfg, eventOpts...)
	if err != nil {
		return nil, err
	}
	return &ConsentStore{states: states, events: events}, nil
}

// Record appends the event and upserts the state in one transaction.
func (s *ConsentStore) Record(ctx context.Context, event *domain.ConsentEvent) (*domain.ConsentState, error) {
	if event == nil || event.User == nil {
		return nil, fmt.Errorf("%w: consent event needs a user", domain.ErrInvalidInput)
	}
	if _, err := domain.ParseConsentType(string(event.Type)); err != nil {
		return nil, err
	}
	if _, err := domain.ParseConsentAction(string(event.Action)); err != nil {
		return nil, err
	}

	content := map[string]any{
		"user":   event.User,
		"type":   string(event.Type),
		"action": string(event.Action),
	}
	if event.ID != nil {
		content["id"] = event.ID
	}
	if event.IP != "" {
		content["ip"] = event.IP
	}
	if event.UserAgent != "" {
		content["user_agent"] = event.UserAgent
	}

	rows, err := s.states.Query(ctx, recordConsentQuery, map[string]any{
		"event":   content,
		"user":    event.User,
		"type":    string(event.Type),
		"granted": event.Action.Granted(),
	})
	if err != nil {
		return nil, WrapError(err, "record consent")
	}
	if len(rows) == 0 {
		return nil, NewDBError(ErrQueryFailed, "record consent returned no state")
	}
	return &rows[0], nil
}

// States returns every stored consent of the user.
func (s *ConsentStore) States(ctx context.Context, userID *surrealmodels.RecordID) ([]domain.ConsentState, error) {
	rows, err := s.states.Query(ctx, "SELECT * FROM consent WHERE user = $user", map[string]any{"user": userID})
	if err != nil {
		return nil, WrapError(err, "list consent states")
	}
	return rows, nil
}

// Events returns the most recent events first, at most limit of them.
func (s *ConsentStore) Events(ctx context.Context, userID *surrealmodels.RecordID, limit int) ([]domain.ConsentEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.events.Query(ctx,
		"SELECT * FROM consent_event WHERE user = $user ORDER BY at DESC LIMIT $limit",
		map[string]any{"user": userID, "limit": limit})
	if err != nil {
		return nil, WrapError(err, "list consent events")
	}
	return rows, nil
}
