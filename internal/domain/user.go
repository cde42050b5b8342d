package domain

import (
	"context"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// User represents the core user model in the application domain.
// Users have no password: they sign in with magic links.
type User struct {
	ID        *surrealmodels.RecordID       `json:"id,omitempty"`
	Email     string                        `json:"email"`
	Name      *string                       `json:"name,omitempty"`
	Locale    string                        `json:"locale,omitempty"`
	CreatedAt *surrealmodels.CustomDateTime `json:"created_at,omitempty"`
}

// DisplayName returns the user's name, or their email when no name is set.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}

// IDString returns the record id as "user:xyz", or "" when unset.
func (u *User) IDString() string {
	if u == nil || u.ID == nil {
		return ""
	}
	return u.ID.String()
}

// UserRepository defines the contract for user data storage operations.
// It lives in the domain because it's a requirement OF the domain, not
// of the database implementation.
type UserRepository interface {
	// FindUserByEmail returns (nil, nil) when no user has the address.
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	// SaveMagicToken replaces any pending token of the user.
	SaveMagicToken(ctx context.Context, userID *surrealmodels.RecordID, secretHash string, expiresAt time.Time) error
}

// IdentityProvider is the hosted identity service: it exchanges credentials
// for a session token and resolves tokens back to users.
type IdentityProvider interface {
	SignIn(ctx context.Context, vars map[string]any) (string, error)
	Authenticate(ctx context.Context, token string) (*User, error)
}
