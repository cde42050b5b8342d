package openalex

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Filter is an ordered set of OpenAlex filters. Values for one key are
// OR-ed with "|", keys are AND-ed with ",".
type Filter struct {
	keys   []string
	values map[string][]string
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{values: make(map[string][]string)}
}

// Add appends values to key. Empty values are dropped.
func (f *Filter) Add(key string, values ...string) *Filter {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			f.values[key] = append(f.values[key], v)
		}
	}
	return f
}

// Clone returns an independent copy of f.
func (f *Filter) Clone() *Filter {
	c := NewFilter()
	if f == nil {
		return c
	}
	for _, k := range f.keys {
		c.Add(k, f.values[k]...)
	}
	return c
}

// String renders "k:v1|v2,k2:v".
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, 0, len(f.keys))
	for _, k := range f.keys {
		if vs := f.values[k]; len(vs) > 0 {
			parts = append(parts, k+":"+strings.Join(vs, "|"))
		}
	}
	return strings.Join(parts, ",")
}

// Query describes one list request.
type Query struct {
	Entity  string
	Filter  *Filter
	Search  string
	GroupBy string
	Select  []string
	PerPage int
	Page    int
}

// Values encodes the query parameters. mailto joins the polite pool.
func (q Query) Values(mailto string) url.Values {
	v := url.Values{}
	if s := q.Filter.String(); s != "" {
		v.Set("filter", s)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.GroupBy != "" {
		v.Set("group_by", q.GroupBy)
	}
	if len(q.Select) > 0 {
		v.Set("select", strings.Join(q.Select, ","))
	}
	if q.PerPage > 0 {
		v.Set("per-page", strconv.Itoa(q.PerPage))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if mailto != "" {
		v.Set("mailto", mailto)
	}
	return v
}

// URL joins base, entity and the encoded parameters. The filter keeps its
// ":" "|" "," separators readable.
func (q Query) URL(base, mailto string) string {
	u := strings.TrimRight(base, "/") + "/" + q.Entity
	enc := q.Values(mailto).Encode()
	if enc == "" {
		return u
	}
	r := strings.NewReplacer("%3A", ":", "%7C", "|", "%2C", ",")
	return u + "?" + r.Replace(enc)
}

var institutionIDPattern = regexp.MustCompile(`(?i)^(?:https?://)?(?:api\.)?(?:openalex\.org/)?(?:institutions/)?(i\d+)$`)

// NormalizeInstitutionID accepts "I123", "i123", "https://openalex.org/I123"
// and the API URL form, and returns "I123".
func NormalizeInstitutionID(raw string) (string, error) {
	m := institutionIDPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidInstitutionID, raw)
	}
	return strings.ToUpper(m[1]), nil
}

// NormalizeInstitutionIDs normalises and de-duplicates ids, keeping order.
// Blank entries are skipped; no ids at all is an error.
func NormalizeInstitutionIDs(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	ids := make([]string, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		id, err := NormalizeInstitutionID(r)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ErrNoInstitutions
	}
	return ids, nil
}

// SplitIDs splits a comma or whitespace separated id list.
func SplitIDs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
}
