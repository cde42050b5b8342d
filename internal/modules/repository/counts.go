package repository

import (
	"context"
	"sync"
	"time"

	"github.com/univ-lehavre/talent-finder-sub000/internal/github"
)

// countsCache keeps GitHub counts for a while; the search API allows only a
// few unauthenticated calls per minute.
type countsCache struct {
	source CountsSource
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]countsEntry
}

type countsEntry struct {
	counts  *github.Counts
	fetched time.Time
}

func newCountsCache(source CountsSource, ttl time.Duration) *countsCache {
	return &countsCache{source: source, ttl: ttl, now: time.Now, entries: map[string]countsEntry{}}
}

// Get returns cached counts for repo, fetching them when missing or stale.
// A nil source yields nil counts.
func (c *countsCache) Get(ctx context.Context, repo github.Repo) (*github.Counts, error) {
	if c == nil || c.source == nil {
		return nil, nil
	}
	key := repo.FullName()

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && c.now().Sub(entry.fetched) < c.ttl {
		return entry.counts, nil
	}

	counts, err := c.source.Counts(ctx, repo)
	if err != nil {
		if !ok {
			return nil, err
		}
		// serve the stale counts for another ttl before retrying
		c.mu.Lock()
		c.entries[key] = countsEntry{counts: entry.counts, fetched: c.now()}
		c.mu.Unlock()
		return entry.counts, nil
	}

	c.mu.Lock()
	c.entries[key] = countsEntry{counts: counts, fetched: c.now()}
	c.mu.Unlock()
	return counts, nil
}
