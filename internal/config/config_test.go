package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_ADDR", "APP_BASE_URL", "OPENALEX_YEARS", "MAGIC_LINK_TTL", "DB_QUERY_TIMEOUT", "OPENALEX_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, "http://localhost:8080", cfg.GetAppBaseURL())
	assert.Equal(t, 5, cfg.GetOpenAlexYears())
	assert.Equal(t, 15*time.Minute, cfg.GetMagicLinkTTL())
	assert.Equal(t, 5*time.Second, cfg.GetDBQueryTimeout())
	assert.Equal(t, "https://api.openalex.org", cfg.GetOpenAlexBaseURL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_BASE_URL", "https://talent.example.org/")
	t.Setenv("OPENALEX_YEARS", "10")
	t.Setenv("MAGIC_LINK_TTL", "1h")
	t.Setenv("DB_EXECUTE_TIMEOUT", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "https://talent.example.org", cfg.GetAppBaseURL(), "trailing slash is trimmed")
	assert.Equal(t, 10, cfg.GetOpenAlexYears())
	assert.Equal(t, time.Hour, cfg.GetMagicLinkTTL())
	assert.Equal(t, 10*time.Second, cfg.GetDBExecuteTimeout(), "invalid values fall back to the default")
}

func TestRequireDB(t *testing.T) {
	cfg := &Config{DBUrl: "ws://localhost:8000/rpc", DBNs: "test"}
	assert.ErrorIs(t, cfg.RequireDB(), ErrMissingDatabaseConfig)

	cfg.DBDb = "talent"
	assert.NoError(t, cfg.RequireDB())
}

func TestParseConsortium(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		data := []byte(`
name: Normandy
institutions:
  - id: I111
    name: First
    country: fr
  - id: " I222 "
  - id: I333
    name: Third
    enabled: false
`)
		c, err := ParseConsortium(data)
		require.NoError(t, err)

		assert.Equal(t, "Normandy", c.Name)
		require.Len(t, c.Institutions, 3)
		assert.Equal(t, "FR", c.Institutions[0].Country)
		assert.Equal(t, "I222", c.Institutions[1].Name, "name defaults to the id")
		assert.Equal(t, []string{"I111", "I222"}, c.IDs(), "disabled institutions are excluded")
	})

	t.Run("rejects empty list", func(t *testing.T) {
		_, err := ParseConsortium([]byte("name: Empty\n"))
		assert.Error(t, err)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := ParseConsortium([]byte("institutions:\n  - id: I1\n  - id: I1\n"))
		assert.ErrorContains(t, err, "listed twice")
	})

	t.Run("rejects missing id", func(t *testing.T) {
		_, err := ParseConsortium([]byte("institutions:\n  - name: Nameless\n"))
		assert.ErrorContains(t, err, "id is required")
	})
}
