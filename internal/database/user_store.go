package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
)

// UserStore implements domain.UserRepository on the root connection.
type UserStore struct {
	users Client[domain.User]
}

var _ domain.UserRepository = (*UserStore)(nil)

// NewUserStore creates a UserStore.
func NewUserStore(conn *Connection, cfg config.Provider, opts ...ClientOption[domain.User]) (*UserStore, error) {
	users, err := NewClient(conn, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &UserStore{users: users}, nil
}

// ParseRecordID splits "table:id" and checks the table.
func ParseRecordID(id, table string) (*surrealmodels.RecordID, error) {
	tb, key, ok := strings.Cut(id, ":")
	if !ok || tb != table || key == "" {
		return nil, fmt.Errorf("%w: %q is not a %s record id", domain.ErrInvalidInput, id, table)
	}
	rid := surrealmodels.NewRecordID(tb, strings.Trim(key, "⟨⟩`"))
	return &rid, nil
}

// FindUserByEmail returns (nil, nil) when no user has the address.
func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.QueryOne(ctx, "SELECT * FROM user WHERE email = $email", map[string]any{
		"email": strings.ToLower(strings.TrimSpace(email)),
	})
	if err != nil {
		return nil, WrapError(err, "find user by email")
	}
	return user, nil
}

// GetByID loads a user by its "user:xyz" id.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	rid, err := ParseRecordID(id, TableUser)
	if err != nil {
		return nil, err
	}
	user, err := s.users.QueryOne(ctx, "SELECT * FROM $id", map[string]any{"id": rid})
	if err != nil {
		return nil, WrapError(err, "get user")
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// Create inserts a user. A duplicate email yields domain.ErrAlreadyExists.
func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || strings.TrimSpace(user.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	data := map[string]any{"email": strings.ToLower(strings.TrimSpace(user.Email))}
	if user.Name != nil {
		data["name"] = *user.Name
	}
	if user.Locale != "" {
		data["locale"] = user.Locale
	}

	created, err := s.users.QueryOne(ctx, "CREATE user CONTENT $data", map[string]any{"data": data})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, user.Email)
		}
		return nil, WrapError(err, "create user")
	}
	if created == nil {
		return nil, NewDBError(ErrQueryFailed, "create user returned no record")
	}
	return created, nil
}

// SaveMagicToken replaces any pending token of the user.
func (s *UserStore) SaveMagicToken(ctx context.Context, userID *surrealmodels.RecordID, secretHash string, expiresAt time.Time) error {
	if userID == nil || secretHash == "" {
		return fmt.Errorf("%w: user and secret hash are required", domain.ErrInvalidInput)
	}
	query := `BEGIN TRANSACTION;
DELETE magic_token WHERE user = $user;
CREATE magic_token CONTENT {
	user: $user,
	secret_hash: $secret_hash,
	expires_at: <datetime>$expires_at
};
COMMIT TRANSACTION;`
	err := s.users.Execute(ctx, query, map[string]any{
		"user":        userID,
		"secret_hash": secretHash,
		"expires_at":  expiresAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return WrapError(err, "save magic token")
	}
	return nil
}

// IsNotFound reports whether err means a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, domain.ErrNotFound)
}
