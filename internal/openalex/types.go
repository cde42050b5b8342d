package openalex

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Meta is the paging block of every OpenAlex list response.
type Meta struct {
	Count            int `json:"count"`
	DBResponseTimeMs int `json:"db_response_time_ms"`
	Page             int `json:"page"`
	PerPage          int `json:"per_page"`
}

// ListResponse is the envelope of list endpoints.
type ListResponse[T any] struct {
	Meta    Meta           `json:"meta"`
	Results []T            `json:"results"`
	GroupBy []GroupByEntry `json:"group_by"`
}

// GroupByEntry is one bucket of a group_by query.
type GroupByEntry struct {
	Key            GroupKey `json:"key"`
	KeyDisplayName string   `json:"key_display_name"`
	Count          int      `json:"count"`
}

// GroupKey holds a group_by key. OpenAlex sends most keys as strings but
// some as numbers or booleans; all are kept as their string form.
type GroupKey string

func (k *GroupKey) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*k = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = GroupKey(s)
		return nil
	}
	*k = GroupKey(string(data))
	return nil
}

// Year parses the key as a year.
func (k GroupKey) Year() (int, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(string(k)))
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}

// Institution is the subset of an OpenAlex institution used by the app.
type Institution struct {
	ID           string   `json:"id"`
	ROR          string   `json:"ror"`
	DisplayName  string   `json:"display_name"`
	CountryCode  string   `json:"country_code"`
	Type         string   `json:"type"`
	HomepageURL  string   `json:"homepage_url"`
	WorksCount   int      `json:"works_count"`
	CitedByCount int      `json:"cited_by_count"`
	Alternatives []string `json:"display_name_alternatives,omitempty"`
}

// ShortID returns the bare "I123" form of the id.
func (i Institution) ShortID() string {
	return shortID(i.ID)
}

// DehydratedInstitution is the compact institution embedded in other entities.
type DehydratedInstitution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
}

// Author is the subset of an OpenAlex author used by the app.
type Author struct {
	ID                    string                  `json:"id"`
	ORCID                 string                  `json:"orcid"`
	DisplayName           string                  `json:"display_name"`
	WorksCount            int                     `json:"works_count"`
	CitedByCount          int                     `json:"cited_by_count"`
	LastKnownInstitutions []DehydratedInstitution `json:"last_known_institutions"`
	SummaryStats          *SummaryStats           `json:"summary_stats,omitempty"`
}

// SummaryStats are citation metrics of an author.
type SummaryStats struct {
	HIndex int `json:"h_index"`
	I10    int `json:"i10_index"`
}

// Work is the subset of an OpenAlex work used by the app.
type Work struct {
	ID              string `json:"id"`
	DOI             string `json:"doi"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	Type            string `json:"type"`
	CitedByCount    int    `json:"cited_by_count"`
}

func shortID(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}
