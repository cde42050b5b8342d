package gitstats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// ErrNoSnapshot is returned while no snapshot file has been generated yet.
var ErrNoSnapshot = errors.New("no repository snapshot available")

// ErrWatchUnsupported is returned by Watch for stores not backed by the OS file system.
var ErrWatchUnsupported = errors.New("snapshot watching requires the OS file system")

// Store serves the latest snapshot and reloads it when the file changes.
type Store struct {
	fs   afero.Fs
	path string

	mu   sync.RWMutex
	snap *Snapshot
	err  error
}

// NewStore creates a Store for path and loads it once.
func NewStore(fs afero.Fs, path string) *Store {
	s := &Store{fs: fs, path: path}
	s.Reload()
	return s
}

// Get returns the current snapshot.
func (s *Store) Get() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		if s.err != nil {
			return nil, s.err
		}
		return nil, ErrNoSnapshot
	}
	return s.snap, nil
}

// Reload reads the file again. A failed reload keeps the previous snapshot.
func (s *Store) Reload() {
	snap, err := Load(s.fs, s.path)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = ErrNoSnapshot
		}
		s.err = err
		if s.snap != nil {
			slog.Warn("Keeping previous repository snapshot", "event", "gitstats_reload_failed", "path", s.path, "error", err)
		}
		return
	}
	s.snap, s.err = snap, nil
	slog.Info("Repository snapshot loaded", "event", "gitstats_loaded", "path", s.path, "commits", snap.Totals.Commits)
}

// Watch reloads the snapshot whenever its file is written, created or
// renamed into place. It watches the parent directory since Save replaces
// the file. The store must read through afero.NewOsFs, since the watcher
// observes the real file system; other file systems get ErrWatchUnsupported.
// The watcher stops when ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	if _, ok := s.fs.(*afero.OsFs); !ok {
		return ErrWatchUnsupported
	}
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		target := filepath.Clean(s.path)
		for {
			select {
			case <-ctx.Done():
				slog.Debug("Snapshot watcher stopped")
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					slog.Debug("Snapshot file changed", "op", event.Op.String(), "path", event.Name)
					s.Reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("Snapshot watcher error", "error", err)
			}
		}
	}()
	return nil
}
