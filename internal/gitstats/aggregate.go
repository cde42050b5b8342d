package gitstats

import (
	"sort"
	"time"
)

// HourBucket totals the commits made during one hour of the day.
type HourBucket struct {
	Hour    int `json:"hour"`
	Commits int `json:"commits"`
	Added   int `json:"added"`
	Deleted int `json:"deleted"`
}

// ByHour returns 24 buckets. Hours are read in each commit's own offset,
// so a commit at 09:00+02:00 lands in hour 9.
func ByHour(commits []Commit) []HourBucket {
	buckets := make([]HourBucket, 24)
	for h := range buckets {
		buckets[h].Hour = h
	}
	for _, c := range commits {
		b := &buckets[c.Date.Hour()]
		b.Commits++
		b.Added += c.Added()
		b.Deleted += c.Deleted()
	}
	return buckets
}

// WeekdayBucket totals the commits made on one day of the week.
type WeekdayBucket struct {
	Weekday time.Weekday `json:"weekday"`
	Commits int          `json:"commits"`
	Added   int          `json:"added"`
	Deleted int          `json:"deleted"`
}

// ByWeekday returns 7 buckets, Monday first.
func ByWeekday(commits []Commit) []WeekdayBucket {
	buckets := make([]WeekdayBucket, 7)
	for i := range buckets {
		buckets[i].Weekday = time.Weekday((i + 1) % 7)
	}
	for _, c := range commits {
		b := &buckets[(int(c.Date.Weekday())+6)%7]
		b.Commits++
		b.Added += c.Added()
		b.Deleted += c.Deleted()
	}
	return buckets
}

// AuthorStats is one row of the leaderboard.
type AuthorStats struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Commits int       `json:"commits"`
	Added   int       `json:"added"`
	Deleted int       `json:"deleted"`
	First   time.Time `json:"first"`
	Last    time.Time `json:"last"`
}

// ByAuthor groups commits by email, sorted by commits desc then name.
func ByAuthor(commits []Commit) []AuthorStats {
	index := make(map[string]int)
	var out []AuthorStats
	for _, c := range commits {
		key := c.Email
		if key == "" {
			key = c.Author
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, AuthorStats{Name: c.Author, Email: c.Email, First: c.Date, Last: c.Date})
		}
		a := &out[i]
		a.Commits++
		a.Added += c.Added()
		a.Deleted += c.Deleted()
		if c.Date.Before(a.First) {
			a.First = c.Date
		}
		if c.Date.After(a.Last) {
			a.Last = c.Date
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Commits != out[j].Commits {
			return out[i].Commits > out[j].Commits
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Totals summarises a history.
type Totals struct {
	Commits int       `json:"commits"`
	Added   int       `json:"added"`
	Deleted int       `json:"deleted"`
	Authors int       `json:"authors"`
	First   time.Time `json:"first"`
	Last    time.Time `json:"last"`
}

// Summarize returns the totals of commits.
func Summarize(commits []Commit) Totals {
	var t Totals
	authors := make(map[string]bool)
	for _, c := range commits {
		t.Commits++
		t.Added += c.Added()
		t.Deleted += c.Deleted()
		authors[c.Email] = true
		if t.First.IsZero() || c.Date.Before(t.First) {
			t.First = c.Date
		}
		if c.Date.After(t.Last) {
			t.Last = c.Date
		}
	}
	t.Authors = len(authors)
	return t
}
