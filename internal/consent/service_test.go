package consent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/pubsub"
)

// memoryRepo mimics the store: events are appended, states keyed by type.
type memoryRepo struct {
	events []domain.ConsentEvent
	states map[domain.ConsentType]domain.ConsentState
	err    error
	clock  time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		states: map[domain.ConsentType]domain.ConsentState{},
		clock:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryRepo) Record(ctx context.Context, event *domain.ConsentEvent) (*domain.ConsentState, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.clock = m.clock.Add(time.Minute)
	e := *event
	e.At = surrealmodels.CustomDateTime{Time: m.clock}
	m.events = append(m.events, e)

	state := domain.ConsentState{
		User:      event.User,
		Type:      event.Type,
		Granted:   event.Action.Granted(),
		UpdatedAt: surrealmodels.CustomDateTime{Time: m.clock},
	}
	m.states[event.Type] = state
	return &state, nil
}

func (m *memoryRepo) States(ctx context.Context, userID *surrealmodels.RecordID) ([]domain.ConsentState, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.ConsentState
	for _, s := range m.states {
		out = append(out, s)
	}
	return out, nil
}

func (m *memoryRepo) Events(ctx context.Context, userID *surrealmodels.RecordID, limit int) ([]domain.ConsentEvent, error) {
	var out []domain.ConsentEvent
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

type capturePublisher struct {
	msgs []pubsub.Message
}

func (c *capturePublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *capturePublisher) Close() error { return nil }

func testUser() *surrealmodels.RecordID {
	id := surrealmodels.NewRecordID("user", "alice")
	return &id
}

func TestService_GrantRevoke(t *testing.T) {
	repo := newMemoryRepo()
	pub := &capturePublisher{}
	svc := NewService(repo, pub)
	ctx := context.Background()
	user := testUser()

	state, err := svc.Grant(ctx, user, "contact", Meta{IP: "10.1.1.1", UserAgent: "test"})
	require.NoError(t, err)
	assert.True(t, state.Granted)

	state, err = svc.Revoke(ctx, user, "contact", Meta{})
	require.NoError(t, err)
	assert.False(t, state.Granted)

	require.Len(t, repo.events, 2)
	first := repo.events[0]
	assert.Equal(t, domain.ConsentGrant, first.Action)
	assert.Equal(t, "10.1.1.1", first.IP)
	assert.Equal(t, "test", first.UserAgent)
	require.NotNil(t, first.ID)
	assert.Equal(t, "consent_event", first.ID.Table)
	assert.NotEqual(t, first.ID.ID, repo.events[1].ID.ID, "each event gets its own id")

	require.Len(t, pub.msgs, 2)
	changed, err := pubsub.DecodeJSON[pubsub.ConsentChangedEvent](pub.msgs[1])
	require.NoError(t, err)
	assert.Equal(t, pubsub.TopicConsentChanged, pub.msgs[1].Topic)
	assert.Equal(t, "user:alice", changed.UserID)
	assert.Equal(t, "revoke", changed.Action)
	assert.False(t, changed.Granted)
}

func TestService_UnknownType(t *testing.T) {
	repo := newMemoryRepo()
	pub := &capturePublisher{}
	svc := NewService(repo, pub)

	_, err := svc.Grant(context.Background(), testUser(), "newsletter", Meta{})
	assert.ErrorIs(t, err, domain.ErrUnknownConsentType)
	assert.Empty(t, repo.events)
	assert.Empty(t, pub.msgs)
}

func TestService_Apply(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	state, err := svc.Apply(context.Background(), testUser(), "analytics", "grant", Meta{})
	require.NoError(t, err)
	assert.True(t, state.Granted)

	_, err = svc.Apply(context.Background(), testUser(), "analytics", "toggle", Meta{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_RequiresUser(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	_, err := svc.Grant(ctx, nil, "contact", Meta{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = svc.Current(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = svc.History(ctx, nil, 10)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestService_CurrentDefaultsToFalse(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	user := testUser()

	_, err := svc.Grant(ctx, user, "profile_visibility", Meta{})
	require.NoError(t, err)
	repo.states["legacy"] = domain.ConsentState{Type: "legacy", Granted: true}

	current, err := svc.Current(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, map[domain.ConsentType]bool{
		domain.ConsentAnalytics:         false,
		domain.ConsentProfileVisibility: true,
		domain.ConsentContact:           false,
		domain.ConsentOpenAlexMatching:  false,
	}, current)

	items, err := svc.Overview(ctx, user)
	require.NoError(t, err)
	require.Len(t, items, len(domain.ConsentTypes))
	assert.Equal(t, domain.ConsentAnalytics, items[0].Type)
	assert.Nil(t, items[0].UpdatedAt)
	assert.True(t, items[1].Granted)
	assert.NotNil(t, items[1].UpdatedAt)
}

func TestService_History(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	user := testUser()

	for _, action := range []string{"grant", "revoke", "grant"} {
		_, err := svc.Apply(ctx, user, "contact", action, Meta{})
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, user, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ConsentGrant, history[0].Action)
	assert.Equal(t, domain.ConsentRevoke, history[1].Action)
	assert.True(t, history[0].At.After(history[1].At.Time))

	all, err := svc.History(ctx, user, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestService_RepositoryError(t *testing.T) {
	repo := newMemoryRepo()
	repo.err = errors.New("db down")
	svc := NewService(repo, nil)

	_, err := svc.Grant(context.Background(), testUser(), "contact", Meta{})
	assert.ErrorContains(t, err, "db down")
	_, err = svc.Current(context.Background(), testUser())
	assert.ErrorContains(t, err, "db down")
}
