package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/httpclient"
)

func TestParseRemote(t *testing.T) {
	want := Repo{Owner: "univ-lehavre", Name: "talent-finder"}
	for _, remote := range []string{
		"https://github.com/univ-lehavre/talent-finder",
		"https://github.com/univ-lehavre/talent-finder.git",
		"https://token@github.com/univ-lehavre/talent-finder.git",
		"git@github.com:univ-lehavre/talent-finder.git",
		"git@github.com:univ-lehavre/talent-finder",
		"ssh://git@github.com/univ-lehavre/talent-finder.git",
		"  https://github.com/univ-lehavre/talent-finder/  ",
	} {
		got, err := ParseRemote(remote)
		require.NoError(t, err, remote)
		assert.Equal(t, want, got, remote)
	}

	for _, remote := range []string{
		"",
		"https://gitlab.com/univ-lehavre/talent-finder.git",
		"git@bitbucket.org:univ-lehavre/talent-finder.git",
		"https://github.com/univ-lehavre",
		"https://github.com/a/b/c",
		"/srv/git/talent-finder.git",
	} {
		_, err := ParseRemote(remote)
		assert.ErrorIs(t, err, ErrNotGitHub, remote)
	}
}

func TestRepoURLs(t *testing.T) {
	r := Repo{Owner: "o", Name: "r"}
	assert.Equal(t, "o/r", r.FullName())
	assert.Equal(t, "https://github.com/o/r", r.URL())
	assert.Equal(t, "https://github.com/o/r/commit/abc", r.CommitURL("abc"))
	assert.Equal(t, "https://github.com/o/r/tree/main/internal/gitstats", r.TreeURL("main", "/internal/gitstats/"))
	assert.Equal(t, "https://github.com/o/r/tree/main", r.TreeURL("main", ""))
	assert.Equal(t, "https://github.com/o/r/issues", r.IssuesURL())
	assert.Equal(t, "https://github.com/o/r/pulls", r.PullsURL())
}

func TestCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/issues", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, apiVersion, r.Header.Get("X-GitHub-Api-Version"))
		switch r.URL.Query().Get("q") {
		case "repo:o/r type:issue state:open":
			w.Write([]byte(`{"total_count": 12, "items": []}`))
		case "repo:o/r type:pr state:open":
			w.Write([]byte(`{"total_count": 3, "items": []}`))
		default:
			t.Errorf("unexpected query %q", r.URL.Query().Get("q"))
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c := NewClient(&config.Config{GitHubAPIURL: srv.URL, GitHubToken: "secret"}, httpclient.WithRetries(0, time.Millisecond))
	counts, err := c.Counts(context.Background(), Repo{Owner: "o", Name: "r"})
	require.NoError(t, err)
	assert.Equal(t, &Counts{OpenIssues: 12, OpenPulls: 3}, counts)
}

func TestCountsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		http.Error(w, `{"message":"Validation Failed"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(&config.Config{GitHubAPIURL: srv.URL}, httpclient.WithRetries(0, time.Millisecond))
	_, err := c.Counts(context.Background(), Repo{Owner: "o", Name: "r"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpclient.StatusCode(err))
}
