// Package consent manages what each user has agreed to. Every change is
// appended to an audit log and mirrored into a current-state table.
package consent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/pubsub"
)

// DefaultHistoryLimit is used when History is called without a positive limit.
const DefaultHistoryLimit = 50

// Meta describes the request behind a change.
type Meta struct {
	IP        string
	UserAgent string
}

// Item is one row of a user's consent overview.
type Item struct {
	Type      domain.ConsentType `json:"type"`
	Granted   bool               `json:"granted"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty"`
}

// Service implements grant, revoke and the read models of consent.
type Service struct {
	repo      domain.ConsentRepository
	publisher pubsub.Publisher
	now       func() time.Time
}

// NewService creates a consent service. Publisher may be nil.
func NewService(repo domain.ConsentRepository, publisher pubsub.Publisher) *Service {
	return &Service{repo: repo, publisher: publisher, now: time.Now}
}

// Grant records that user agreed to consentType.
func (s *Service) Grant(ctx context.Context, user *surrealmodels.RecordID, consentType string, meta Meta) (*domain.ConsentState, error) {
	return s.change(ctx, user, consentType, domain.ConsentGrant, meta)
}

// Revoke records that user withdrew consentType.
func (s *Service) Revoke(ctx context.Context, user *surrealmodels.RecordID, consentType string, meta Meta) (*domain.ConsentState, error) {
	return s.change(ctx, user, consentType, domain.ConsentRevoke, meta)
}

// Apply records action ("grant" or "revoke") for consentType.
func (s *Service) Apply(ctx context.Context, user *surrealmodels.RecordID, consentType, action string, meta Meta) (*domain.ConsentState, error) {
	a, err := domain.ParseConsentAction(action)
	if err != nil {
		return nil, err
	}
	return s.change(ctx, user, consentType, a, meta)
}

func (s *Service) change(ctx context.Context, user *surrealmodels.RecordID, consentType string, action domain.ConsentAction, meta Meta) (*domain.ConsentState, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	ct, err := domain.ParseConsentType(consentType)
	if err != nil {
		return nil, err
	}

	eventID := surrealmodels.NewRecordID("consent_event", uuid.NewString())
	state, err := s.repo.Record(ctx, &domain.ConsentEvent{
		ID:        &eventID,
		User:      user,
		Type:      ct,
		Action:    action,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("recording %s of %s: %w", action, ct, err)
	}

	slog.InfoContext(ctx, "Consent changed", "event", "consent_changed",
		"user_id", user.String(), "type", string(ct), "action", string(action))

	if s.publisher != nil {
		err := pubsub.PublishJSON(ctx, s.publisher, pubsub.TopicConsentChanged, user.String(), pubsub.ConsentChangedEvent{
			UserID:  user.String(),
			Type:    string(ct),
			Action:  string(action),
			Granted: action.Granted(),
			At:      s.now().UTC(),
		})
		if err != nil {
			slog.WarnContext(ctx, "Failed to publish consent change", "event", "consent_publish_failure", "error", err)
		}
	}
	return state, nil
}

// Current returns the consent of user for every known type. Types the user
// never answered are reported as not granted.
func (s *Service) Current(ctx context.Context, user *surrealmodels.RecordID) (map[domain.ConsentType]bool, error) {
	states, err := s.states(ctx, user)
	if err != nil {
		return nil, err
	}
	current := make(map[domain.ConsentType]bool, len(domain.ConsentTypes))
	for _, t := range domain.ConsentTypes {
		current[t] = states[t].Granted
	}
	return current, nil
}

// Overview returns one item per known type, in display order.
func (s *Service) Overview(ctx context.Context, user *surrealmodels.RecordID) ([]Item, error) {
	states, err := s.states(ctx, user)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(domain.ConsentTypes))
	for _, t := range domain.ConsentTypes {
		item := Item{Type: t}
		if st, ok := states[t]; ok {
			item.Granted = st.Granted
			if !st.UpdatedAt.IsZero() {
				updated := st.UpdatedAt.Time
				item.UpdatedAt = &updated
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Service) states(ctx context.Context, user *surrealmodels.RecordID) (map[domain.ConsentType]domain.ConsentState, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	rows, err := s.repo.States(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("loading consent: %w", err)
	}
	byType := make(map[domain.ConsentType]domain.ConsentState, len(rows))
	for _, row := range rows {
		// Rows for types no longer offered are ignored.
		if _, err := domain.ParseConsentType(string(row.Type)); err == nil {
			byType[row.Type] = row
		}
	}
	return byType, nil
}

// History returns the newest consent events of user first.
func (s *Service) History(ctx context.Context, user *surrealmodels.RecordID, limit int) ([]domain.ConsentEvent, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	events, err := s.repo.Events(ctx, user, limit)
	if err != nil {
		return nil, fmt.Errorf("loading consent history: %w", err)
	}
	return events, nil
}
