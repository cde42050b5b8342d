package gitstats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Repository identifies the history a snapshot was built from.
type Repository struct {
	Dir    string `json:"dir"`
	Remote string `json:"remote,omitempty"`
	Head   string `json:"head,omitempty"`
}

// Snapshot is everything the repository page shows, precomputed by the CLI.
type Snapshot struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Repository  Repository      `json:"repository"`
	Totals      Totals          `json:"totals"`
	Recent      []CommitSummary `json:"recent"`
	Hourly      []HourBucket    `json:"hourly"`
	Weekdays    []WeekdayBucket `json:"weekdays"`
	Authors     []AuthorStats   `json:"authors"`
	Sources     *SourceStats    `json:"sources,omitempty"`
}

// CommitSummary is a commit without its file list.
type CommitSummary struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	Subject string    `json:"subject"`
	Files   int       `json:"files"`
	Added   int       `json:"added"`
	Deleted int       `json:"deleted"`
}

// ShortHash is the first seven characters of the hash.
func (c CommitSummary) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// BuildOptions configures Build.
type BuildOptions struct {
	Dir    string
	Since  string
	Recent int // commits kept in the snapshot, file lists dropped
	Now    func() time.Time
}

// Build reads the repository history and source tree into a Snapshot.
func Build(ctx context.Context, r Runner, fs afero.Fs, opts BuildOptions) (*Snapshot, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Recent <= 0 {
		opts.Recent = 20
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	commits, err := Log(ctx, r, opts.Dir, LogOptions{Since: opts.Since})
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	repo := Repository{Dir: opts.Dir}
	if remote, err := RemoteURL(ctx, r, opts.Dir, "origin"); err == nil {
		repo.Remote = remote
	} else {
		slog.DebugContext(ctx, "No origin remote", "event", "gitstats_no_remote", "error", err)
	}
	if head, err := Head(ctx, r, opts.Dir); err == nil {
		repo.Head = head
	}

	sources, err := NewSourceCounter(fs, nil, nil).Count(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("count sources: %w", err)
	}

	recent := make([]CommitSummary, 0, min(opts.Recent, len(commits)))
	for _, c := range commits[:min(opts.Recent, len(commits))] {
		recent = append(recent, c.Summary())
	}

	return &Snapshot{
		GeneratedAt: now().UTC(),
		Repository:  repo,
		Totals:      Summarize(commits),
		Recent:      recent,
		Hourly:      ByHour(commits),
		Weekdays:    ByWeekday(commits),
		Authors:     ByAuthor(commits),
		Sources:     sources,
	}, nil
}

// Save writes snap as JSON. The file is written next to path and renamed
// into place so watchers never read a partial file.
func Save(fs afero.Fs, path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		return err
	}
	return fs.Rename(tmp, path)
}

// Load reads a snapshot written by Save.
func Load(fs afero.Fs, path string) (*Snapshot, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return &snap, nil
}
