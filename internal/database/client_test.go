package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
)

type fakeExecutor[T any] struct {
	rows     []T
	err      error
	queries  []string
	params   []map[string]any
	deadline time.Duration
}

func (f *fakeExecutor[T]) record(ctx context.Context, query string, params map[string]any) {
	f.queries = append(f.queries, query)
	f.params = append(f.params, params)
	if d, ok := ctx.Deadline(); ok {
		f.deadline = time.Until(d)
	}
}

func (f *fakeExecutor[T]) Query(ctx context.Context, query string, params map[string]any) ([]T, error) {
	f.record(ctx, query, params)
	return f.rows, f.err
}

func (f *fakeExecutor[T]) QueryOne(ctx context.Context, query string, params map[string]any) (*T, error) {
	f.record(ctx, query, params)
	if f.err != nil || len(f.rows) == 0 {
		return nil, f.err
	}
	return &f.rows[0], nil
}

func (f *fakeExecutor[T]) Execute(ctx context.Context, query string, params map[string]any) error {
	f.record(ctx, query, params)
	return f.err
}

func testConfig() *config.Config {
	return &config.Config{
		DBQueryTimeout:   2 * time.Second,
		DBExecuteTimeout: 4 * time.Second,
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewClient[int](nil, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non positive timeout", func(t *testing.T) {
		cfg := testConfig()
		cfg.DBQueryTimeout = 0
		_, err := NewClient(nil, cfg, WithExecutor[int](&fakeExecutor[int]{}))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no connection and no executor", func(t *testing.T) {
		_, err := NewClient[int](nil, testConfig())
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestClientAppliesTimeouts(t *testing.T) {
	exec := &fakeExecutor[int]{rows: []int{1, 2}}
	c, err := NewClient(nil, testConfig(), WithExecutor[int](exec))
	require.NoError(t, err)

	rows, err := c.Query(context.Background(), "SELECT * FROM x", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, rows)
	assert.InDelta(t, 2*time.Second, exec.deadline, float64(100*time.Millisecond))

	require.NoError(t, c.Execute(context.Background(), "DELETE x", nil))
	assert.InDelta(t, 4*time.Second, exec.deadline, float64(100*time.Millisecond))

	ctx := WithQueryTimeout(context.Background(), 500*time.Millisecond)
	_, err = c.QueryOne(ctx, "SELECT * FROM x", nil)
	require.NoError(t, err)
	assert.InDelta(t, 500*time.Millisecond, exec.deadline, float64(100*time.Millisecond))
}

func TestDBError(t *testing.T) {
	base := errors.New("boom")
	err := NewDBError(base, "select user").WithQuery("SELECT * FROM user").WithParams(map[string]any{"secret": "hunter2"})

	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "select user")
	assert.Contains(t, err.Error(), "SELECT * FROM user")
	assert.Contains(t, err.Error(), "secret")
	assert.NotContains(t, err.Error(), "hunter2")

	wrapped := WrapError(err, "load profile")
	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "load profile: select user")
	assert.Nil(t, WrapError(nil, "nothing"))
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.False(t, isConnectionError(context.Canceled))
	assert.False(t, isConnectionError(errors.New("field email already exists")))
	assert.True(t, isConnectionError(errors.New("dial tcp: connection refused")))
	assert.True(t, isConnectionError(errors.New("write: broken pipe")))
}

func TestRedactDBURL(t *testing.T) {
	assert.Equal(t, "ws://root:xxxxx@localhost:8000/rpc", redactDBURL("ws://root:secret@localhost:8000/rpc"))
	assert.Equal(t, "ws://localhost:8000/rpc", redactDBURL("ws://localhost:8000/rpc"))
	assert.Equal(t, "invalid-url", redactDBURL("://bad"))
}

func TestBackoffRetry(t *testing.T) {
	b := &Backoff{maxRetries: 2, baseDelay: time.Millisecond, maxDelay: 5 * time.Millisecond, multiplier: 2}

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := b.Retry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("not yet")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		err := b.Retry(context.Background(), func() error {
			calls++
			return errors.New("down")
		})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Contains(t, err.Error(), "after 3 attempts")
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := b.Retry(ctx, func() error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWithConnectionNotConnected(t *testing.T) {
	conn := NewConnection(testConfig())
	err := conn.WithConnection(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestKeysOf(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, keysOf(map[string]any{"b": "x", "a": "y"}))
	assert.Nil(t, keysOf("nope"))
}
