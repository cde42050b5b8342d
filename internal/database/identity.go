package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/surrealdb/surrealdb.go"
	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
)

// IdentityStore talks to the SurrealDB record access method. Each call opens
// its own short-lived connection so that signing in or authenticating never
// changes the auth state of the shared root connection.
type IdentityStore struct {
	cfg config.Provider
}

// NewIdentityStore creates an IdentityStore.
func NewIdentityStore(cfg config.Provider) *IdentityStore {
	return &IdentityStore{cfg: cfg}
}

var _ domain.IdentityProvider = (*IdentityStore)(nil)

func (s *IdentityStore) open(ctx context.Context) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, s.cfg.GetDBURL())
	if err != nil {
		return nil, NewDBError(err, "failed to open identity connection")
	}
	if err := db.Use(ctx, s.cfg.GetDBNs(), s.cfg.GetDBDb()); err != nil {
		_ = db.Close(ctx)
		return nil, NewDBError(err, "failed to select namespace/db")
	}
	return db, nil
}

// SignIn runs the magic access method with vars and returns the session token.
// The namespace, database and access method are filled in.
func (s *IdentityStore) SignIn(ctx context.Context, vars map[string]any) (string, error) {
	db, err := s.open(ctx)
	if err != nil {
		return "", err
	}
	defer db.Close(ctx)

	params := make(map[string]any, len(vars)+3)
	for k, v := range vars {
		params[k] = v
	}
	params["ns"] = s.cfg.GetDBNs()
	params["db"] = s.cfg.GetDBDb()
	params["ac"] = AccessMagic

	token, err := db.SignIn(ctx, params)
	if err != nil {
		slog.DebugContext(ctx, "Record sign in rejected", "event", "identity_signin_rejected", "error", err)
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	return token, nil
}

// Authenticate validates token and returns the user it was issued for.
func (s *IdentityStore) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close(ctx)

	if err := db.Authenticate(ctx, token); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	res, err := surrealdb.Query[[]domain.User](ctx, db, "SELECT * FROM $auth", nil)
	if err != nil {
		return nil, NewDBError(err, "failed to load authenticated user")
	}
	if res == nil || len(*res) == 0 || len((*res)[0].Result) == 0 || (*res)[0].Result[0].ID == nil {
		return nil, domain.ErrInvalidCredentials
	}
	user := (*res)[0].Result[0]
	return &user, nil
}
