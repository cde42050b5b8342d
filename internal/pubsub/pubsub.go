// Package pubsub is the in-process event bus. Services publish domain events
// on it and background subscribers, such as the audit log, react to them.
package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Topics published by the application.
const (
	TopicLinkRequested  = "auth.link.requested"
	TopicSessionCreated = "auth.session.created"
	TopicSessionDeleted = "auth.session.deleted"
	TopicConsentChanged = "consent.changed"
)

// MetaEventID is the metadata key holding the unique id of an event.
const MetaEventID = "event_id"

// ErrEmptyTopic is returned when a message has no topic.
var ErrEmptyTopic = errors.New("message topic is empty")

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel the message belongs to (e.g. "consent.changed").
	Topic string
	// UserID identifies the user the event is about.
	UserID string
	// Payload holds the JSON encoded event.
	Payload []byte
	// Metadata carries extra context such as the event id.
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the bus.
type Subscriber interface {
	// Subscribe starts listening to the given topic in the background. The
	// subscription ends when ctx is canceled or the subscriber is closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// PublishJSON encodes payload as JSON and publishes it on topic with a fresh event id.
func PublishJSON(ctx context.Context, p Publisher, topic, userID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", topic, err)
	}
	return p.Publish(ctx, Message{
		Topic:    topic,
		UserID:   userID,
		Payload:  data,
		Metadata: map[string]string{MetaEventID: uuid.NewString()},
	})
}

// DecodeJSON decodes the payload of msg into a T.
func DecodeJSON[T any](msg Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, fmt.Errorf("decoding %s event: %w", msg.Topic, err)
	}
	return v, nil
}
