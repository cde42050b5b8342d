package github

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/httpclient"
)

const apiVersion = "2022-11-28"

// Counts are the open work items of a repository.
type Counts struct {
	OpenIssues int `json:"open_issues"`
	OpenPulls  int `json:"open_pulls"`
}

// Client calls the GitHub REST API.
type Client struct {
	http    *httpclient.Client
	baseURL string
}

// NewClient creates a client. GITHUB_TOKEN, when set, is sent as a bearer token.
func NewClient(cfg config.Provider, opts ...httpclient.Option) *Client {
	base := []httpclient.Option{
		httpclient.WithHeader("Accept", "application/vnd.github+json"),
		httpclient.WithHeader("X-GitHub-Api-Version", apiVersion),
		httpclient.WithHeader("User-Agent", "talent-finder"),
	}
	if token := cfg.GetGitHubToken(); token != "" {
		base = append(base, httpclient.WithHeader("Authorization", "Bearer "+token))
	}
	return &Client{
		http:    httpclient.New(append(base, opts...)...),
		baseURL: cfg.GetGitHubAPIURL(),
	}
}

type searchResult struct {
	TotalCount int `json:"total_count"`
}

// SearchURL builds the issue search URL for kind ("issue" or "pr").
func (c *Client) SearchURL(repo Repo, kind string) string {
	q := fmt.Sprintf("repo:%s type:%s state:open", repo.FullName(), kind)
	return c.baseURL + "/search/issues?per_page=1&q=" + url.QueryEscape(q)
}

func (c *Client) count(ctx context.Context, repo Repo, kind string) (int, error) {
	var res searchResult
	if err := c.http.GetJSON(ctx, c.SearchURL(repo, kind), &res); err != nil {
		return 0, fmt.Errorf("github %s search for %s: %w", kind, repo.FullName(), err)
	}
	return res.TotalCount, nil
}

// Counts returns the number of open issues and open pull requests.
func (c *Client) Counts(ctx context.Context, repo Repo) (*Counts, error) {
	var counts Counts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.OpenIssues, err = c.count(gctx, repo, "issue")
		return err
	})
	g.Go(func() (err error) {
		counts.OpenPulls, err = c.count(gctx, repo, "pr")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &counts, nil
}
