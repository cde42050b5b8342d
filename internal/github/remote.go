// Package github reads repository metadata from GitHub.
package github

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNotGitHub is returned for remotes hosted elsewhere.
var ErrNotGitHub = errors.New("remote is not a GitHub repository")

const webBase = "https://github.com"

// Repo is a GitHub repository.
type Repo struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// FullName is "owner/name".
func (r Repo) FullName() string { return r.Owner + "/" + r.Name }

// URL is the repository home page.
func (r Repo) URL() string { return webBase + "/" + r.FullName() }

// CommitURL links to one commit.
func (r Repo) CommitURL(hash string) string { return r.URL() + "/commit/" + url.PathEscape(hash) }

// TreeURL links to a path at a ref.
func (r Repo) TreeURL(ref, path string) string {
	u := r.URL() + "/tree/" + url.PathEscape(ref)
	if path = strings.Trim(path, "/"); path != "" {
		u += "/" + path
	}
	return u
}

// IssuesURL links to the open issues.
func (r Repo) IssuesURL() string { return r.URL() + "/issues" }

// PullsURL links to the open pull requests.
func (r Repo) PullsURL() string { return r.URL() + "/pulls" }

// ParseRemote understands the https, scp-like and ssh remote forms:
//
//	https://github.com/owner/repo(.git)
//	git@github.com:owner/repo(.git)
//	ssh://git@github.com/owner/repo(.git)
func ParseRemote(remote string) (Repo, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return Repo{}, fmt.Errorf("%w: empty remote", ErrNotGitHub)
	}

	var host, path string
	switch {
	case strings.Contains(remote, "://"):
		u, err := url.Parse(remote)
		if err != nil {
			return Repo{}, fmt.Errorf("%w: %v", ErrNotGitHub, err)
		}
		host, path = u.Hostname(), u.Path
	case strings.Contains(remote, "@") && strings.Contains(remote, ":"):
		// scp-like: user@host:path
		at := strings.Index(remote, "@")
		hostPath := remote[at+1:]
		var ok bool
		host, path, ok = strings.Cut(hostPath, ":")
		if !ok {
			return Repo{}, fmt.Errorf("%w: %q", ErrNotGitHub, remote)
		}
	default:
		return Repo{}, fmt.Errorf("%w: %q", ErrNotGitHub, remote)
	}

	if !strings.EqualFold(host, "github.com") && !strings.EqualFold(host, "www.github.com") {
		return Repo{}, fmt.Errorf("%w: host %q", ErrNotGitHub, host)
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, fmt.Errorf("%w: path %q", ErrNotGitHub, path)
	}
	name := strings.TrimSuffix(parts[1], ".git")
	if name == "" {
		return Repo{}, fmt.Errorf("%w: path %q", ErrNotGitHub, path)
	}
	return Repo{Owner: parts[0], Name: name}, nil
}
