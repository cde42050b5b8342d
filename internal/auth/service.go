// Package auth implements passwordless sign-in with magic links. The hosted
// identity service checks and burns the one-time secret; this package issues
// the secrets, emails the links and turns session tokens into users.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
	"github.com/univ-lehavre/talent-finder-sub000/internal/pubsub"
)

const (
	// SessionCookieName is the cookie holding the session token.
	SessionCookieName = "auth_token"
	// MaxSessionAge caps how long a session cookie lives.
	MaxSessionAge = 7 * 24 * time.Hour
	// DefaultLinkTTL is how long a magic link stays valid when none is configured.
	DefaultLinkTTL = 15 * time.Minute

	secretBytes = 32
	magicPath   = "/auth/magic"
)

// Session is the result of a successful sign-in.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// RequestMeta describes the HTTP request behind an operation, for the audit log.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// Dependencies holds the collaborators of the Service.
type Dependencies struct {
	Users     domain.UserRepository
	Identity  domain.IdentityProvider
	Emailer   domain.EmailSender
	Publisher pubsub.Publisher
	BaseURL   string
	LinkTTL   time.Duration
}

// Service runs the magic link flow.
type Service struct {
	users     domain.UserRepository
	identity  domain.IdentityProvider
	emailer   domain.EmailSender
	publisher pubsub.Publisher
	baseURL   string
	linkTTL   time.Duration
	validate  *validator.Validate
	now       func() time.Time
	random    io.Reader
}

// NewService creates the auth service. Publisher may be nil.
func NewService(deps Dependencies) *Service {
	ttl := deps.LinkTTL
	if ttl <= 0 {
		ttl = DefaultLinkTTL
	}
	return &Service{
		users:     deps.Users,
		identity:  deps.Identity,
		emailer:   deps.Emailer,
		publisher: deps.Publisher,
		baseURL:   strings.TrimRight(deps.BaseURL, "/"),
		linkTTL:   ttl,
		validate:  NewValidator(),
		now:       time.Now,
		random:    rand.Reader,
	}
}

// LinkTTL returns how long issued links stay valid.
func (s *Service) LinkTTL() time.Duration {
	return s.linkTTL
}

// RequestLink emails a sign-in link to email, creating the account on first
// use. The result does not reveal whether the account existed. Only malformed
// input yields domain.ErrInvalidInput.
func (s *Service) RequestLink(ctx context.Context, email string, locale i18n.Locale, meta RequestMeta) error {
	req := LinkRequest{Email: strings.ToLower(strings.TrimSpace(email))}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeValidation(err))
	}

	user, err := s.findOrCreate(ctx, req.Email, locale)
	if err != nil {
		return err
	}

	secret, err := s.newSecret()
	if err != nil {
		return fmt.Errorf("generating secret: %w", err)
	}
	expiresAt := s.now().Add(s.linkTTL)
	if err := s.users.SaveMagicToken(ctx, user.ID, HashSecret(secret), expiresAt); err != nil {
		return fmt.Errorf("saving magic token: %w", err)
	}

	if l, ok := i18n.Parse(user.Locale); ok {
		locale = l
	}
	msg, err := LinkEmail(locale, user.Email, s.MagicLinkURL(user.IDString(), secret), s.linkTTL)
	if err != nil {
		return fmt.Errorf("rendering magic link email: %w", err)
	}
	if err := s.emailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending magic link email: %w", err)
	}

	slog.InfoContext(ctx, "Magic link sent", "event", "auth_link_sent", "user_id", user.IDString())
	s.publish(ctx, pubsub.TopicLinkRequested, pubsub.SessionEvent{
		UserID: user.IDString(),
		Email:  user.Email,
		IP:     meta.IP,
		At:     s.now().UTC(),
	})
	return nil
}

func (s *Service) findOrCreate(ctx context.Context, email string, locale i18n.Locale) (*domain.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user, err = s.users.Create(ctx, &domain.User{Email: email, Locale: string(locale)})
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Lost a race with a concurrent request for the same address.
		user, err = s.users.FindUserByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	if user == nil || user.ID == nil {
		return nil, fmt.Errorf("creating user: %w", domain.ErrNotFound)
	}
	slog.InfoContext(ctx, "User created", "event", "auth_user_created", "user_id", user.IDString())
	return user, nil
}

// MagicLinkURL builds the link mailed to the user.
func (s *Service) MagicLinkURL(userID, secret string) string {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("secret", secret)
	return s.baseURL + magicPath + "?" + q.Encode()
}

// Exchange trades the parameters of a magic link for a session. Every
// failure, including malformed parameters, is domain.ErrInvalidMagicLink.
func (s *Service) Exchange(ctx context.Context, userID, secret string, meta RequestMeta) (*Session, error) {
	req := ExchangeRequest{UserID: strings.TrimSpace(userID), Secret: strings.TrimSpace(secret)}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidMagicLink, describeValidation(err))
	}

	token, err := s.identity.SignIn(ctx, map[string]any{
		"user":   req.UserID,
		"secret": req.Secret,
	})
	if err != nil {
		slog.WarnContext(ctx, "Magic link rejected", "event", "auth_link_rejected", "user_id", req.UserID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidMagicLink, err)
	}

	session := &Session{Token: token, ExpiresAt: SessionExpiry(token, s.now())}
	slog.InfoContext(ctx, "Session created", "event", "auth_session_created", "user_id", req.UserID)
	s.publish(ctx, pubsub.TopicSessionCreated, pubsub.SessionEvent{
		UserID: req.UserID,
		IP:     meta.IP,
		At:     s.now().UTC(),
	})
	return session, nil
}

// Authenticate resolves a session token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.identity.Authenticate(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// Logout records the end of a session. The caller clears the cookie.
func (s *Service) Logout(ctx context.Context, user *domain.User, meta RequestMeta) {
	if user == nil {
		return
	}
	slog.InfoContext(ctx, "Session deleted", "event", "auth_session_deleted", "user_id", user.IDString())
	s.publish(ctx, pubsub.TopicSessionDeleted, pubsub.SessionEvent{
		UserID: user.IDString(),
		IP:     meta.IP,
		At:     s.now().UTC(),
	})
}

func (s *Service) publish(ctx context.Context, topic string, event pubsub.SessionEvent) {
	if s.publisher == nil {
		return
	}
	if err := pubsub.PublishJSON(ctx, s.publisher, topic, event.UserID, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish auth event", "event", "auth_publish_failure", "topic", topic, "error", err)
	}
}

func (s *Service) newSecret() (string, error) {
	b := make([]byte, secretBytes)
	if _, err := io.ReadFull(s.random, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashSecret returns the hex SHA-256 of secret, as stored by the identity
// service and compared by its sign-in query.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
