package domain

import (
	"context"
	"fmt"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// ConsentType identifies something a user can agree to.
type ConsentType string

const (
	ConsentAnalytics         ConsentType = "analytics"
	ConsentProfileVisibility ConsentType = "profile_visibility"
	ConsentContact           ConsentType = "contact"
	ConsentOpenAlexMatching  ConsentType = "openalex_matching"
)

// ConsentTypes lists every known consent type in display order.
var ConsentTypes = []ConsentType{
	ConsentAnalytics,
	ConsentProfileVisibility,
	ConsentContact,
	ConsentOpenAlexMatching,
}

// ParseConsentType validates a raw consent type.
func ParseConsentType(s string) (ConsentType, error) {
	for _, t := range ConsentTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownConsentType, s)
}

// ConsentAction is what happened in a consent event.
type ConsentAction string

const (
	ConsentGrant  ConsentAction = "grant"
	ConsentRevoke ConsentAction = "revoke"
)

// ParseConsentAction validates a raw consent action.
func ParseConsentAction(s string) (ConsentAction, error) {
	switch ConsentAction(s) {
	case ConsentGrant, ConsentRevoke:
		return ConsentAction(s), nil
	}
	return "", fmt.Errorf("%w: unknown consent action %q", ErrInvalidInput, s)
}

// Granted reports the consent state an action leads to.
func (a ConsentAction) Granted() bool {
	return a == ConsentGrant
}

// ConsentEvent is an immutable audit record of a grant or revoke.
type ConsentEvent struct {
	ID        *surrealmodels.RecordID      `json:"id,omitempty"`
	User      *surrealmodels.RecordID      `json:"user"`
	Type      ConsentType                  `json:"type"`
	Action    ConsentAction                `json:"action"`
	At        surrealmodels.CustomDateTime `json:"at"`
	IP        string                       `json:"ip,omitempty"`
	UserAgent string                       `json:"user_agent,omitempty"`
}

// ConsentState is the current consent of a user for one type.
type ConsentState struct {
	ID        *surrealmodels.RecordID      `json:"id,omitempty"`
	User      *surrealmodels.RecordID      `json:"user"`
	Type      ConsentType                  `json:"type"`
	Granted   bool                         `json:"granted"`
	UpdatedAt surrealmodels.CustomDateTime `json:"updated_at"`
}

// ConsentRepository stores the consent audit log and the current state.
type ConsentRepository interface {
	// Record appends the event and upserts the matching state atomically.
	Record(ctx context.Context, event *ConsentEvent) (*ConsentState, error)
	States(ctx context.Context, userID *surrealmodels.RecordID) ([]ConsentState, error)
	// Events returns the most recent events first.
	Events(ctx context.Context, userID *surrealmodels.RecordID, limit int) ([]ConsentEvent, error)
}
