package gitstats

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = "\x1eabc1234567\x1fAda Lovelace\x1fada@example.org\x1f2024-03-05T09:15:00+02:00\x1fInitial import\n\n" +
	"10\t2\tmain.go\n" +
	"-\t-\tlogo.png\n" +
	"\x1edef4567890\x1fBob\x1fbob@example.org\x1f2024-03-06T23:30:00-05:00\x1fFix build\n\n" +
	"1\t1\tmain.go\n" +
	"\x1e0123456789\x1fAda Lovelace\x1fada@example.org\x1f2024-03-07T09:45:00+02:00\x1fMerge\n"

func TestParseLog(t *testing.T) {
	commits, err := ParseLog(sampleLog)
	require.NoError(t, err)
	require.Len(t, commits, 3)

	first := commits[0]
	assert.Equal(t, "abc1234567", first.Hash)
	assert.Equal(t, "Ada Lovelace", first.Author)
	assert.Equal(t, "Initial import", first.Subject)
	assert.Equal(t, 9, first.Date.Hour())
	want := []FileChange{
		{Path: "main.go", Added: 10, Deleted: 2},
		{Path: "logo.png", Binary: true},
	}
	if diff := cmp.Diff(want, first.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 10, first.Added())
	assert.Equal(t, 2, first.Deleted())

	assert.Empty(t, commits[2].Files)
	assert.Equal(t, CommitSummary{
		Hash: "def4567890", Author: "Bob", Date: commits[1].Date, Subject: "Fix build", Files: 1, Added: 1, Deleted: 1,
	}, commits[1].Summary())
	assert.Equal(t, "def4567", commits[1].Summary().ShortHash())
}

func TestParseLogErrors(t *testing.T) {
	_, err := ParseLog("\x1eonly\x1ftwo\n")
	assert.Error(t, err)

	_, err = ParseLog("\x1eh\x1fa\x1fe\x1fyesterday\n")
	assert.Error(t, err)

	_, err = ParseLog("\x1eh\x1fa\x1fe\x1f2024-01-01T00:00:00Z\n\nx\ty\tfile.go\n")
	assert.Error(t, err)

	commits, err := ParseLog("")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

type fakeRunner struct {
	outputs map[string]string
	calls   [][]string
}

func (f *fakeRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	out, ok := f.outputs[args[0]]
	if !ok {
		return nil, assert.AnError
	}
	return []byte(out), nil
}

func TestLogArguments(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{"log": sampleLog}}
	commits, err := Log(context.Background(), r, ".", LogOptions{Since: "1 year ago", MaxCount: 50})
	require.NoError(t, err)
	assert.Len(t, commits, 3)

	args := strings.Join(r.calls[0], " ")
	assert.Contains(t, args, "--numstat")
	assert.Contains(t, args, "--date=iso-strict")
	assert.Contains(t, args, "--since=1 year ago")
	assert.Contains(t, args, "--max-count=50")
}

func TestByHourUsesCommitOffset(t *testing.T) {
	commits, err := ParseLog(sampleLog)
	require.NoError(t, err)

	hours := ByHour(commits)
	require.Len(t, hours, 24)
	assert.Equal(t, HourBucket{Hour: 9, Commits: 2, Added: 10, Deleted: 2}, hours[9])
	assert.Equal(t, HourBucket{Hour: 23, Commits: 1, Added: 1, Deleted: 1}, hours[23])

	total := 0
	for _, h := range hours {
		total += h.Commits
	}
	assert.Equal(t, 3, total)
}

func TestByWeekday(t *testing.T) {
	commits, err := ParseLog(sampleLog)
	require.NoError(t, err)

	days := ByWeekday(commits)
	require.Len(t, days, 7)
	assert.Equal(t, time.Monday, days[0].Weekday)
	assert.Equal(t, time.Sunday, days[6].Weekday)
	assert.Equal(t, 1, days[1].Commits) // Tuesday
	assert.Equal(t, 1, days[2].Commits) // Wednesday
	assert.Equal(t, 1, days[3].Commits) // Thursday
}

func TestByAuthor(t *testing.T) {
	commits, err := ParseLog(sampleLog)
	require.NoError(t, err)
	commits = append(commits, Commit{Author: "Aaron", Email: "aaron@example.org", Date: commits[0].Date})

	authors := ByAuthor(commits)
	require.Len(t, authors, 3)
	assert.Equal(t, "Ada Lovelace", authors[0].Name)
	assert.Equal(t, 2, authors[0].Commits)
	assert.Equal(t, commits[0].Date, authors[0].First)
	assert.Equal(t, commits[2].Date, authors[0].Last)
	// ties broken by name
	assert.Equal(t, "Aaron", authors[1].Name)
	assert.Equal(t, "Bob", authors[2].Name)
}

func TestSummarize(t *testing.T) {
	commits, err := ParseLog(sampleLog)
	require.NoError(t, err)

	totals := Summarize(commits)
	assert.Equal(t, 3, totals.Commits)
	assert.Equal(t, 11, totals.Added)
	assert.Equal(t, 3, totals.Deleted)
	assert.Equal(t, 2, totals.Authors)
	assert.True(t, totals.First.Equal(commits[0].Date))
	assert.True(t, totals.Last.Equal(commits[2].Date))
}
