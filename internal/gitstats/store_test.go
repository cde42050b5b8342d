package gitstats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreReload(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/gitstats.json")

	_, err := store.Get()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	require.NoError(t, Save(fs, "/data/gitstats.json", &Snapshot{Totals: Totals{Commits: 4}}))
	store.Reload()
	snap, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Totals.Commits)

	// a broken file keeps the last good snapshot
	require.NoError(t, afero.WriteFile(fs, "/data/gitstats.json", []byte("{"), 0o644))
	store.Reload()
	snap, err = store.Get()
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Totals.Commits)
}

func TestStoreWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "gitstats.json")
	fs := afero.NewOsFs()

	store := NewStore(fs, path)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Watch(ctx))

	require.NoError(t, Save(fs, path, &Snapshot{Totals: Totals{Commits: 7}}))

	assert.Eventually(t, func() bool {
		snap, err := store.Get()
		return err == nil && snap.Totals.Commits == 7
	}, 3*time.Second, 20*time.Millisecond)
}

func TestStoreWatchNeedsOSFileSystem(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/data/gitstats.json")
	assert.ErrorIs(t, store.Watch(context.Background()), ErrWatchUnsupported)
}
