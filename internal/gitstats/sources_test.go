package gitstats

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
}

func TestSourceCounter(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/repo/main.go":                     "package main\n\n// TODO: flags\nfunc main() {}\n",
		"/repo/main_test.go":                "package main\n\nfunc TestMain(t *testing.T) {}\n",
		"/repo/web/app.ts":                  "export function boot() {}\nit('boots', () => {})\n// FIXME\n",
		"/repo/README.md":                   "# TODO not counted\n",
		"/repo/vendor/lib/lib.go":           "func Vendored() {}\n",
		"/repo/web/node_modules/x/index.js": "function x() {}\n",
		"/repo/.git/hooks/pre-commit.py":    "def hook():\n",
	})

	stats, err := NewSourceCounter(fs, nil, nil).Count("/repo")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 10, stats.Lines)
	want := map[string]int{"tests": 2, "todos": 2, "functions": 3}
	if diff := cmp.Diff(want, stats.Matches); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, stats.Extensions, 2)
	assert.Equal(t, ExtensionStats{Extension: ".go", Files: 2, Lines: 7}, stats.Extensions[0])
	assert.Equal(t, ExtensionStats{Extension: ".ts", Files: 1, Lines: 3}, stats.Extensions[1])
}

func TestSourceCounterLongLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	bundle := "// TODO split bundle " + strings.Repeat("a=1;", 512*1024) + "\nvar y = 1\n"
	writeFiles(t, fs, map[string]string{
		"/repo/main.go":        "package main\nfunc main() {}\n",
		"/repo/web/app.min.js": bundle,
	})

	stats, err := NewSourceCounter(fs, nil, nil).Count("/repo")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 4, stats.Lines)
	assert.Equal(t, 1, stats.Matches["todos"])
	assert.Equal(t, 1, stats.Matches["functions"])
	assert.Contains(t, stats.Extensions, ExtensionStats{Extension: ".js", Files: 1, Lines: 2})
}

func TestSourceCounterLastLineWithoutNewline(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/repo/a.go": "package a\nfunc A() {}"})

	stats, err := NewSourceCounter(fs, nil, nil).Count("/repo")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Lines)
	assert.Equal(t, 1, stats.Matches["functions"])
}

func TestBuildSaveLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/repo/main.go": "package main\nfunc main() {}\n"})

	r := &fakeRunner{outputs: map[string]string{
		"log":       sampleLog,
		"remote":    "git@github.com:univ-lehavre/talent-finder.git\n",
		"rev-parse": "abc1234567\n",
	}}
	generated := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	snap, err := Build(context.Background(), r, fs, BuildOptions{Dir: "/repo", Recent: 2, Now: func() time.Time { return generated }})
	require.NoError(t, err)
	assert.Equal(t, generated, snap.GeneratedAt)
	assert.Equal(t, "git@github.com:univ-lehavre/talent-finder.git", snap.Repository.Remote)
	assert.Equal(t, "abc1234567", snap.Repository.Head)
	assert.Equal(t, 3, snap.Totals.Commits)
	assert.Len(t, snap.Recent, 2)
	assert.Len(t, snap.Hourly, 24)
	assert.Equal(t, 1, snap.Sources.Files)

	path := "/data/gitstats.json"
	require.NoError(t, Save(fs, path, snap))
	exists, err := afero.Exists(fs, path+".tmp")
	require.NoError(t, err)
	assert.False(t, exists)

	loaded, err := Load(fs, path)
	require.NoError(t, err)
	assert.Equal(t, snap.Totals.Commits, loaded.Totals.Commits)
	assert.Equal(t, snap.Authors[0].Name, loaded.Authors[0].Name)
	assert.True(t, snap.GeneratedAt.Equal(loaded.GeneratedAt))
}

func TestBuildFailsWithoutHistory(t *testing.T) {
	_, err := Build(context.Background(), &fakeRunner{}, afero.NewMemMapFs(), BuildOptions{Dir: "/repo"})
	assert.Error(t, err)
}
