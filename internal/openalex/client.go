// Package openalex is a small client for the OpenAlex bibliographic API and
// the institution statistics built on it.
package openalex

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/httpclient"
)

var (
	ErrInvalidInstitutionID = errors.New("invalid OpenAlex institution id")
	ErrNoInstitutions       = errors.New("no institution ids given")
	ErrEmptyQuery           = errors.New("search query is empty")
)

// Entities.
const (
	EntityWorks        = "works"
	EntityAuthors      = "authors"
	EntityInstitutions = "institutions"
)

// Filter keys used by the app.
const (
	FilterWorkInstitution   = "authorships.institutions.id"
	FilterAuthorInstitution = "last_known_institutions.id"
	FilterType              = "type"
	FilterPublicationYear   = "publication_year"
)

const userAgent = "talent-finder (+https://github.com/univ-lehavre/talent-finder)"

// Client queries OpenAlex.
type Client struct {
	http    *httpclient.Client
	baseURL string
	mailto  string
}

// NewClient creates a client from configuration. Extra options tune the
// underlying HTTP client.
func NewClient(cfg config.Provider, opts ...httpclient.Option) *Client {
	ua := userAgent
	if cfg.GetOpenAlexEmail() != "" {
		ua += " mailto:" + cfg.GetOpenAlexEmail()
	}
	opts = append([]httpclient.Option{httpclient.WithHeader("User-Agent", ua)}, opts...)
	return &Client{
		http:    httpclient.New(opts...),
		baseURL: cfg.GetOpenAlexBaseURL(),
		mailto:  cfg.GetOpenAlexEmail(),
	}
}

// URL returns the request URL for q.
func (c *Client) URL(q Query) string {
	return q.URL(c.baseURL, c.mailto)
}

func list[T any](ctx context.Context, c *Client, q Query) (*ListResponse[T], error) {
	var resp ListResponse[T]
	if err := c.http.GetJSON(ctx, c.URL(q), &resp); err != nil {
		return nil, fmt.Errorf("openalex %s: %w", q.Entity, err)
	}
	return &resp, nil
}

// SearchInstitutions runs a full-text institution search.
func (c *Client) SearchInstitutions(ctx context.Context, query string, perPage int) ([]Institution, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	resp, err := list[Institution](ctx, c, Query{Entity: EntityInstitutions, Search: query, PerPage: perPage})
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetInstitution fetches one institution by id.
func (c *Client) GetInstitution(ctx context.Context, id string) (*Institution, error) {
	id, err := NormalizeInstitutionID(id)
	if err != nil {
		return nil, err
	}
	var inst Institution
	u := c.URL(Query{Entity: EntityInstitutions + "/" + url.PathEscape(id)})
	if err := c.http.GetJSON(ctx, u, &inst); err != nil {
		return nil, fmt.Errorf("openalex institution %s: %w", id, err)
	}
	return &inst, nil
}

// SearchAuthors searches authors, optionally limited to institutions.
func (c *Client) SearchAuthors(ctx context.Context, query string, institutionIDs []string, perPage int) ([]Author, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	f := NewFilter()
	if len(institutionIDs) > 0 {
		ids, err := NormalizeInstitutionIDs(institutionIDs)
		if err != nil {
			return nil, err
		}
		f.Add(FilterAuthorInstitution, ids...)
	}
	resp, err := list[Author](ctx, c, Query{Entity: EntityAuthors, Search: query, Filter: f, PerPage: perPage})
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Count returns meta.count of entity under filter.
func (c *Client) Count(ctx context.Context, entity string, filter *Filter) (int, error) {
	resp, err := list[struct{}](ctx, c, Query{Entity: entity, Filter: filter, PerPage: 1, Select: []string{"id"}})
	if err != nil {
		return 0, err
	}
	return max(resp.Meta.Count, 0), nil
}

// CountWorks returns the number of works matching filter.
func (c *Client) CountWorks(ctx context.Context, filter *Filter) (int, error) {
	return c.Count(ctx, EntityWorks, filter)
}

// GroupBy returns the group_by buckets of entity under filter.
func (c *Client) GroupBy(ctx context.Context, entity string, filter *Filter, key string) ([]GroupByEntry, error) {
	resp, err := list[struct{}](ctx, c, Query{Entity: entity, Filter: filter, GroupBy: key})
	if err != nil {
		return nil, err
	}
	return resp.GroupBy, nil
}
