package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
)

func TestNewEmailService(t *testing.T) {
	s, err := NewEmailService(&config.Config{EmailProvider: "log"})
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	_, err = NewEmailService(&config.Config{EmailProvider: "resend"})
	assert.Error(t, err)

	s, err = NewEmailService(&config.Config{EmailProvider: "resend", EmailAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &ResendSender{}, s)

	_, err = NewEmailService(&config.Config{EmailProvider: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestResendSender(t *testing.T) {
	var got resendPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewResendSender("key-123", "")
	s.endpoint = srv.URL

	err := s.Send(context.Background(), domain.EmailMessage{To: "ada@example.org", Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer key-123", auth)
	assert.Equal(t, []string{"ada@example.org"}, got.To)
	assert.Contains(t, got.From, "onboarding@resend.dev")

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad key"}`, http.StatusUnauthorized)
	}))
	defer failing.Close()
	s.endpoint = failing.URL
	err = s.Send(context.Background(), domain.EmailMessage{To: "ada@example.org"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "bad key")
}
