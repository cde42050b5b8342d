package database

import (
	"context"
	_ "embed"
	"log/slog"
	"regexp"
	"sort"

	"github.com/surrealdb/surrealdb.go"
)

//go:embed schema.surql
var schema string

// Tables the application reads and writes.
const (
	TableUser         = "user"
	TableMagicToken   = "magic_token"
	TableConsent      = "consent"
	TableConsentEvent = "consent_event"
	TableAuthEvent    = "auth_event"
)

// AccessMagic is the record access method used for magic link sign in.
const AccessMagic = "magic"

// ApplySchema defines tables, fields, indexes and the access method.
// Every statement is IF NOT EXISTS so it is safe on each boot.
func ApplySchema(ctx context.Context, conn *Connection) error {
	err := conn.WithConnection(ctx, func(db *surrealdb.DB) error {
		_, err := surrealdb.Query[any](ctx, db, schema, nil)
		return err
	})
	if err != nil {
		return WrapError(err, "failed to apply schema")
	}
	slog.InfoContext(ctx, "Database schema applied", "event", "db_schema_applied")
	return nil
}

var tableName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Inspector reads schema metadata for health checks.
type Inspector struct {
	conn *Connection
}

// NewInspector creates an Inspector over conn.
func NewInspector(conn *Connection) *Inspector {
	return &Inspector{conn: conn}
}

// Version returns the server version string.
func (i *Inspector) Version(ctx context.Context) (string, error) {
	var version string
	err := i.conn.WithConnection(ctx, func(db *surrealdb.DB) error {
		v, err := db.Version(ctx)
		if err != nil {
			return err
		}
		version = v.Version
		return nil
	})
	return version, err
}

// Tables lists the tables defined in the current database.
func (i *Inspector) Tables(ctx context.Context) ([]string, error) {
	info, err := i.info(ctx, "INFO FOR DB")
	if err != nil {
		return nil, err
	}
	return keysOf(info["tables"]), nil
}

// Fields lists the fields defined on table.
func (i *Inspector) Fields(ctx context.Context, table string) ([]string, error) {
	if !tableName.MatchString(table) {
		return nil, NewDBError(ErrInvalidInput, "invalid table name "+table)
	}
	info, err := i.info(ctx, "INFO FOR TABLE "+table)
	if err != nil {
		return nil, err
	}
	return keysOf(info["fields"]), nil
}

func (i *Inspector) info(ctx context.Context, query string) (map[string]any, error) {
	var info map[string]any
	err := i.conn.WithConnection(ctx, func(db *surrealdb.DB) error {
		res, err := surrealdb.Query[map[string]any](ctx, db, query, nil)
		if err != nil {
			return err
		}
		if res != nil && len(*res) > 0 {
			info = (*res)[0].Result
		}
		return nil
	})
	if err != nil {
		return nil, NewDBError(err, "schema inspection failed").WithQuery(query)
	}
	return info, nil
}

func keysOf(v any) []string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
