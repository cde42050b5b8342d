package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/testutils"
)

func setupTestConnection(t *testing.T) (*Connection, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cfg := testutils.ConfigForTests(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := NewConnection(cfg)
	require.NoError(t, conn.Connect(ctx))
	require.NoError(t, ApplySchema(ctx, conn))

	return conn, func() { _ = conn.Close(context.Background()) }
}

func TestMagicLinkRoundTrip(t *testing.T) {
	conn, cleanup := setupTestConnection(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cfg := testutils.ConfigForTests(t)
	users, err := NewUserStore(conn, cfg)
	require.NoError(t, err)
	identity := NewIdentityStore(cfg)

	email := "magic-" + uuid.NewString()[:8] + "@example.org"
	user, err := users.Create(ctx, &domain.User{Email: email})
	require.NoError(t, err)
	require.NotNil(t, user.ID)

	_, err = users.Create(ctx, &domain.User{Email: email})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	secret := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	sum := sha256.Sum256([]byte(secret))
	require.NoError(t, users.SaveMagicToken(ctx, user.ID, hex.EncodeToString(sum[:]), time.Now().Add(time.Minute)))

	_, err = identity.SignIn(ctx, map[string]any{"user": user.ID.String(), "secret": "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	token, err := identity.SignIn(ctx, map[string]any{"user": user.ID.String(), "secret": secret})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	authed, err := identity.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, email, authed.Email)

	// The secret is burned by the first sign in.
	_, err = identity.SignIn(ctx, map[string]any{"user": user.ID.String(), "secret": secret})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = identity.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestConsentStoreIntegration(t *testing.T) {
	conn, cleanup := setupTestConnection(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cfg := testutils.ConfigForTests(t)
	users, err := NewUserStore(conn, cfg)
	require.NoError(t, err)
	consents, err := NewConsentStore(conn, cfg, nil, nil)
	require.NoError(t, err)

	user, err := users.Create(ctx, &domain.User{Email: "consent-" + uuid.NewString()[:8] + "@example.org"})
	require.NoError(t, err)

	_, err = consents.Record(ctx, &domain.ConsentEvent{User: user.ID, Type: domain.ConsentAnalytics, Action: domain.ConsentGrant})
	require.NoError(t, err)
	state, err := consents.Record(ctx, &domain.ConsentEvent{User: user.ID, Type: domain.ConsentAnalytics, Action: domain.ConsentRevoke})
	require.NoError(t, err)
	assert.False(t, state.Granted)

	states, err := consents.States(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.False(t, states[0].Granted)

	events, err := consents.Events(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.ConsentRevoke, events[0].Action)
}

func TestInspector(t *testing.T) {
	conn, cleanup := setupTestConnection(t)
	defer cleanup()

	ctx := context.Background()
	inspector := NewInspector(conn)

	version, err := inspector.Version(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, version)

	tables, err := inspector.Tables(ctx)
	require.NoError(t, err)
	assert.Contains(t, tables, TableConsent)

	fields, err := inspector.Fields(ctx, TableConsent)
	require.NoError(t, err)
	assert.Subset(t, fields, []string{"user", "type", "granted", "updated_at"})

	_, err = inspector.Fields(ctx, "bad name;")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
