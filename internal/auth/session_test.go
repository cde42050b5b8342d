package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestSessionExpiry(t *testing.T) {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  time.Time
	}{
		{"exp claim", signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), now.Add(time.Hour)},
		{"capped", signed(t, jwt.MapClaims{"exp": now.Add(30 * 24 * time.Hour).Unix()}), now.Add(MaxSessionAge)},
		{"no exp", signed(t, jwt.MapClaims{"ID": "user:a"}), now.Add(MaxSessionAge)},
		{"not a jwt", "opaque-token", now.Add(MaxSessionAge)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(SessionExpiry(tt.token, now)), "got %s", SessionExpiry(tt.token, now))
		})
	}
}

func TestSessionCookie(t *testing.T) {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	c := SessionCookie(&Session{Token: "tok", ExpiresAt: now.Add(2 * time.Hour)}, true, now)

	assert.Equal(t, SessionCookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 7200, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	expired := ExpiredSessionCookie(false)
	assert.Equal(t, -1, expired.MaxAge)
	assert.Empty(t, expired.Value)
	assert.False(t, expired.Secure)
}

func TestLinkEmail(t *testing.T) {
	msg, err := LinkEmail("en", "a@example.org", "https://x.test/auth/magic?userId=user%3Aa&secret=s", 10*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, "a@example.org", msg.To)
	assert.Contains(t, msg.HTML, `<html lang="en">`)
	assert.Contains(t, msg.HTML, `href="https://x.test/auth/magic?userId=user%3Aa&amp;secret=s"`)
	assert.Contains(t, msg.Text, "expires in 10 minutes")
}
