package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
)

func TestParseRecordID(t *testing.T) {
	rid, err := ParseRecordID("user:abc123", TableUser)
	require.NoError(t, err)
	assert.Equal(t, "user", rid.Table)
	assert.Equal(t, "abc123", rid.ID)

	for _, bad := range []string{"", "abc", "consent:abc", "user:"} {
		_, err := ParseRecordID(bad, TableUser)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()

	t.Run("find normalises email", func(t *testing.T) {
		exec := &fakeExecutor[domain.User]{}
		store, err := NewUserStore(nil, testConfig(), WithExecutor[domain.User](exec))
		require.NoError(t, err)

		user, err := store.FindUserByEmail(ctx, "  Ada@Example.org ")
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Equal(t, "ada@example.org", exec.params[0]["email"])
	})

	t.Run("get by id not found", func(t *testing.T) {
		exec := &fakeExecutor[domain.User]{}
		store, err := NewUserStore(nil, testConfig(), WithExecutor[domain.User](exec))
		require.NoError(t, err)

		_, err = store.GetByID(ctx, "user:missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = store.GetByID(ctx, "consent:x")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("create maps unique violation", func(t *testing.T) {
		exec := &fakeExecutor[domain.User]{err: errors.New("Database index `user_email` already contains 'a@b.c'")}
		store, err := NewUserStore(nil, testConfig(), WithExecutor[domain.User](exec))
		require.NoError(t, err)

		_, err = store.Create(ctx, &domain.User{Email: "a@b.c"})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("create requires email", func(t *testing.T) {
		store, err := NewUserStore(nil, testConfig(), WithExecutor[domain.User](&fakeExecutor[domain.User]{}))
		require.NoError(t, err)

		_, err = store.Create(ctx, &domain.User{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("save magic token sends hash and expiry", func(t *testing.T) {
		exec := &fakeExecutor[domain.User]{}
		store, err := NewUserStore(nil, testConfig(), WithExecutor[domain.User](exec))
		require.NoError(t, err)

		uid := surrealmodels.NewRecordID("user", "u1")
		exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
		require.NoError(t, store.SaveMagicToken(ctx, &uid, "deadbeef", exp))

		require.Len(t, exec.queries, 1)
		assert.Contains(t, exec.queries[0], "DELETE magic_token WHERE user = $user")
		assert.Equal(t, "deadbeef", exec.params[0]["secret_hash"])
		assert.Equal(t, "2030-01-02T03:04:05Z", exec.params[0]["expires_at"])
	})
}

func TestConsentStoreRecord(t *testing.T) {
	ctx := context.Background()
	uid := surrealmodels.NewRecordID("user", "u1")

	states := &fakeExecutor[domain.ConsentState]{rows: []domain.ConsentState{{User: &uid, Type: domain.ConsentContact, Granted: true}}}
	events := &fakeExecutor[domain.ConsentEvent]{}
	store, err := NewConsentStore(nil, testConfig(),
		[]ClientOption[domain.ConsentState]{WithExecutor[domain.ConsentState](states)},
		[]ClientOption[domain.ConsentEvent]{WithExecutor[domain.ConsentEvent](events)})
	require.NoError(t, err)

	state, err := store.Record(ctx, &domain.ConsentEvent{User: &uid, Type: domain.ConsentContact, Action: domain.ConsentGrant, IP: "10.0.0.1"})
	require.NoError(t, err)
	assert.True(t, state.Granted)

	require.Len(t, states.queries, 1)
	assert.Contains(t, states.queries[0], "BEGIN TRANSACTION")
	assert.Equal(t, true, states.params[0]["granted"])
	assert.Equal(t, "contact", states.params[0]["type"])
	content := states.params[0]["event"].(map[string]any)
	assert.Equal(t, "10.0.0.1", content["ip"])
	assert.NotContains(t, content, "user_agent")

	_, err = store.Record(ctx, &domain.ConsentEvent{User: &uid, Type: "newsletter", Action: domain.ConsentGrant})
	assert.ErrorIs(t, err, domain.ErrUnknownConsentType)

	_, err = store.Record(ctx, &domain.ConsentEvent{Type: domain.ConsentContact, Action: domain.ConsentGrant})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.Events(ctx, &uid, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, events.params[0]["limit"])
}

func TestAuditStoreAppend(t *testing.T) {
	exec := &fakeExecutor[domain.AuthEvent]{}
	store, err := NewAuditStore(nil, testConfig(), WithExecutor[domain.AuthEvent](exec))
	require.NoError(t, err)

	require.NoError(t, store.Append(context.Background(), domain.AuthEvent{UserID: "user:u1", Kind: domain.AuthSessionCreated}))
	content := exec.params[0]["event"].(map[string]any)
	assert.Equal(t, "session_created", content["kind"])
	assert.NotContains(t, content, "at")
}
