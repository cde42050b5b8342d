// Package audit records sign-in activity published on the event bus into the
// auth_event table.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/module"
	"github.com/univ-lehavre/talent-finder-sub000/internal/pubsub"
	"github.com/univ-lehavre/talent-finder-sub000/internal/registry"
)

const appendTimeout = 5 * time.Second

// topicKinds maps each audited topic to the event kind stored for it.
var topicKinds = map[string]domain.AuthEventKind{
	pubsub.TopicLinkRequested:  domain.AuthLinkRequested,
	pubsub.TopicSessionCreated: domain.AuthSessionCreated,
	pubsub.TopicSessionDeleted: domain.AuthSessionDeleted,
}

// Dependencies holds the services required by the audit module.
type Dependencies struct {
	Subscriber pubsub.Subscriber
	Events     domain.AuthEventRepository
}

// Module subscribes to the auth topics for the lifetime of the server.
type Module struct {
	module.BaseModule
	subscriber pubsub.Subscriber
	events     domain.AuthEventRepository
	cancel     context.CancelFunc
}

// New creates the audit module.
func New(deps Dependencies) *Module {
	return &Module{
		subscriber: deps.Subscriber,
		events:     deps.Events,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "audit"
}

// Boot starts one subscription per audited topic. Subscriptions outlive the
// boot context and end on Shutdown.
func (m *Module) Boot(ctx context.Context, routes module.Routes, reg *registry.Registry) error {
	subCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	for topic := range topicKinds {
		if err := m.subscriber.Subscribe(subCtx, topic, m.handle); err != nil {
			cancel()
			return fmt.Errorf("audit: %w", err)
		}
	}
	slog.InfoContext(ctx, "Audit subscriber started", "event", "audit_started", "topics", len(topicKinds))
	return nil
}

// Shutdown ends the subscriptions.
func (m *Module) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}

func (m *Module) handle(ctx context.Context, msg pubsub.Message) error {
	kind, ok := topicKinds[msg.Topic]
	if !ok {
		return nil
	}

	event, err := toAuthEvent(kind, msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, appendTimeout)
	defer cancel()
	if err := m.events.Append(ctx, event); err != nil {
		return fmt.Errorf("appending %s event for %s: %w", kind, event.UserID, err)
	}
	return nil
}

func toAuthEvent(kind domain.AuthEventKind, msg pubsub.Message) (domain.AuthEvent, error) {
	payload, err := pubsub.DecodeJSON[pubsub.SessionEvent](msg)
	if err != nil {
		return domain.AuthEvent{}, err
	}

	userID := payload.UserID
	if userID == "" {
		userID = msg.UserID
	}
	at := payload.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	return domain.AuthEvent{
		UserID: userID,
		Kind:   kind,
		At:     surrealmodels.CustomDateTime{Time: at},
		IP:     payload.IP,
	}, nil
}
