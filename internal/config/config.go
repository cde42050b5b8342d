package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider exposes configuration values to the rest of the application.
// Packages depend on this interface rather than on *Config so tests can
// supply partial fakes.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string

	GetDBURL() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetDBQueryTimeout() time.Duration
	GetDBExecuteTimeout() time.Duration

	GetEmailProvider() string
	GetEmailAPIKey() string
	GetEmailSender() string
	GetMagicLinkTTL() time.Duration

	GetOpenAlexBaseURL() string
	GetOpenAlexEmail() string
	GetOpenAlexYears() int

	GetGitHubToken() string
	GetGitHubAPIURL() string
	GetGitRepoDir() string
	GetGitStatsFile() string

	GetConsortiumFile() string
	GetHealthPublicURL() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string
	AppBaseURL    string
	SessionSecret string

	DBUrl            string
	DBNs             string
	DBDb             string
	DBUser           string
	DBPass           string
	DBQueryTimeout   time.Duration
	DBExecuteTimeout time.Duration

	EmailProvider string
	EmailAPIKey   string
	EmailSender   string
	MagicLinkTTL  time.Duration

	OpenAlexBaseURL string
	OpenAlexEmail   string
	OpenAlexYears   int

	GitHubToken  string
	GitHubAPIURL string
	GitRepoDir   string
	GitStatsFile string

	ConsortiumFile  string
	HealthPublicURL string
}

// ErrMissingDatabaseConfig is returned by RequireDB when the SurrealDB
// connection settings are incomplete.
var ErrMissingDatabaseConfig = errors.New("required environment variables SURREAL_URL, SURREAL_NS, or SURREAL_DB are not set")

// New loads configuration for the web server. The server cannot run without
// a database, so missing database settings are fatal.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := Load()
	if err := cfg.RequireDB(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applying defaults.
// It does not validate database settings; commands that do not touch the
// database (such as git statistics) only need Load.
func Load() *Config {
	return &Config{
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
		AppBaseURL:    strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret-change-me"),

		DBUrl:            os.Getenv("SURREAL_URL"),
		DBUser:           os.Getenv("SURREAL_USER"),
		DBPass:           os.Getenv("SURREAL_PASS"),
		DBNs:             os.Getenv("SURREAL_NS"),
		DBDb:             os.Getenv("SURREAL_DB"),
		DBQueryTimeout:   getDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		DBExecuteTimeout: getDuration("DB_EXECUTE_TIMEOUT", 10*time.Second),

		EmailProvider: getEnv("EMAIL_PROVIDER", "log"),
		EmailAPIKey:   os.Getenv("EMAIL_API_KEY"),
		EmailSender:   os.Getenv("EMAIL_SENDER"),
		MagicLinkTTL:  getDuration("MAGIC_LINK_TTL", 15*time.Minute),

		OpenAlexBaseURL: strings.TrimRight(getEnv("OPENALEX_BASE_URL", "https://api.openalex.org"), "/"),
		OpenAlexEmail:   os.Getenv("OPENALEX_EMAIL"),
		OpenAlexYears:   getInt("OPENALEX_YEARS", 5),

		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GitHubAPIURL: strings.TrimRight(getEnv("GITHUB_API_URL", "https://api.github.com"), "/"),
		GitRepoDir:   getEnv("GIT_REPO_DIR", "."),
		GitStatsFile: getEnv("GITSTATS_FILE", "data/gitstats.json"),

		ConsortiumFile:  getEnv("CONSORTIUM_FILE", "config/consortium.yaml"),
		HealthPublicURL: os.Getenv("HEALTH_PUBLIC_URL"),
	}
}

// RequireDB reports whether the database settings are complete.
func (c *Config) RequireDB() error {
	if c.DBUrl == "" || c.DBNs == "" || c.DBDb == "" {
		return ErrMissingDatabaseConfig
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Invalid duration for %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Invalid integer for %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func (c *Config) GetServerAddr() string    { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string    { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }

func (c *Config) GetDBURL() string                  { return c.DBUrl }
func (c *Config) GetDBNs() string                   { return c.DBNs }
func (c *Config) GetDBDb() string                   { return c.DBDb }
func (c *Config) GetDBUser() string                 { return c.DBUser }
func (c *Config) GetDBPass() string                 { return c.DBPass }
func (c *Config) GetDBQueryTimeout() time.Duration   { return c.DBQueryTimeout }
func (c *Config) GetDBExecuteTimeout() time.Duration { return c.DBExecuteTimeout }

func (c *Config) GetEmailProvider() string        { return c.EmailProvider }
func (c *Config) GetEmailAPIKey() string          { return c.EmailAPIKey }
func (c *Config) GetEmailSender() string          { return c.EmailSender }
func (c *Config) GetMagicLinkTTL() time.Duration { return c.MagicLinkTTL }

func (c *Config) GetOpenAlexBaseURL() string { return c.OpenAlexBaseURL }
func (c *Config) GetOpenAlexEmail() string   { return c.OpenAlexEmail }
func (c *Config) GetOpenAlexYears() int      { return c.OpenAlexYears }

func (c *Config) GetGitHubToken() string  { return c.GitHubToken }
func (c *Config) GetGitHubAPIURL() string { return c.GitHubAPIURL }
func (c *Config) GetGitRepoDir() string   { return c.GitRepoDir }
func (c *Config) GetGitStatsFile() string { return c.GitStatsFile }

func (c *Config) GetConsortiumFile() string  { return c.ConsortiumFile }
func (c *Config) GetHealthPublicURL() string { return c.HealthPublicURL }
