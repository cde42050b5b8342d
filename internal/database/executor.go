package database

import (
	"context"
	"errors"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

type surrealExecutor[T any] struct {
	conn *Connection
}

// NewSurrealExecutor returns an executor that runs queries on the managed connection.
func NewSurrealExecutor[T any](conn *Connection) QueryExecutor[T] {
	return &surrealExecutor[T]{conn: conn}
}

// Query returns the rows of the last statement, so multi-statement
// transactions yield the result of their final RETURN.
func (e *surrealExecutor[T]) Query(ctx context.Context, query string, params map[string]any) ([]T, error) {
	var rows []T
	err := e.conn.WithConnection(ctx, func(db *surrealdb.DB) error {
		results, err := surrealdb.Query[[]T](ctx, db, query, params)
		if err != nil {
			return err
		}
		if results == nil || len(*results) == 0 {
			return nil
		}
		rows = (*results)[len(*results)-1].Result
		return nil
	})
	if err != nil {
		return nil, NewDBError(errors.Join(ErrQueryFailed, err), "query failed").WithQuery(query).WithParams(params)
	}
	return rows, nil
}

func (e *surrealExecutor[T]) QueryOne(ctx context.Context, query string, params map[string]any) (*T, error) {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") && !hasLimitClause(query) {
		query += " LIMIT 1"
	}
	rows, err := e.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (e *surrealExecutor[T]) Execute(ctx context.Context, query string, params map[string]any) error {
	err := e.conn.WithConnection(ctx, func(db *surrealdb.DB) error {
		_, err := surrealdb.Query[any](ctx, db, query, params)
		return err
	})
	if err != nil {
		return NewDBError(errors.Join(ErrQueryFailed, err), "execute failed").WithQuery(query).WithParams(params)
	}
	return nil
}

func hasLimitClause(query string) bool {
	return strings.Contains(" "+strings.ToUpper(query)+" ", " LIMIT ")
}
