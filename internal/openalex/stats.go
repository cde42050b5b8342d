package openalex

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// YearCount is the number of articles published in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Timings are the elapsed times of the three statistics queries.
// Total is their sum, not the wall clock of the parallel run.
type Timings struct {
	Works    time.Duration
	Articles time.Duration
	Authors  time.Duration
	Total    time.Duration
}

// MarshalJSON renders the timings in milliseconds.
func (t Timings) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]int64{
		"works_ms":    t.Works.Milliseconds(),
		"articles_ms": t.Articles.Milliseconds(),
		"authors_ms":  t.Authors.Milliseconds(),
		"total_ms":    t.Total.Milliseconds(),
	})
}

// Stats summarises the output of a set of institutions.
type Stats struct {
	InstitutionIDs []string    `json:"institution_ids"`
	Works          int         `json:"works"`
	Authors        int         `json:"authors"`
	Years          []YearCount `json:"years"`
	Before         int         `json:"before"`
	Timings        Timings     `json:"timings"`
}

// Source is what the statistics need from OpenAlex.
type Source interface {
	Count(ctx context.Context, entity string, filter *Filter) (int, error)
	GroupBy(ctx context.Context, entity string, filter *Filter, key string) ([]GroupByEntry, error)
}

// StatsService computes institution statistics.
type StatsService struct {
	source Source
	years  int
	now    func() time.Time
}

// NewStatsService creates a StatsService with a window of years.
func NewStatsService(source Source, years int) *StatsService {
	if years <= 0 {
		years = 5
	}
	return &StatsService{source: source, years: years, now: time.Now}
}

// YearWindow returns the contiguous n years ending at current, ascending.
func YearWindow(current, n int) []int {
	if n <= 0 {
		return nil
	}
	years := make([]int, n)
	for i := range years {
		years[i] = current - n + 1 + i
	}
	return years
}

// BucketYears places group_by counts into the window ending at current.
// Earlier years are summed into before, later years and keys that are not
// years are dropped.
func BucketYears(groups []GroupByEntry, current, n int) (window []YearCount, before int) {
	years := YearWindow(current, n)
	window = make([]YearCount, len(years))
	for i, y := range years {
		window[i] = YearCount{Year: y}
	}
	if len(years) == 0 {
		return window, 0
	}
	first := years[0]
	for _, g := range groups {
		y, ok := g.Key.Year()
		if !ok || y > current || g.Count < 0 {
			continue
		}
		if y < first {
			before += g.Count
			continue
		}
		window[y-first].Count += g.Count
	}
	return window, before
}

// InstitutionStats runs the works count, the articles by year and the
// authors count in parallel for ids.
func (s *StatsService) InstitutionStats(ctx context.Context, ids []string) (*Stats, error) {
	ids, err := NormalizeInstitutionIDs(ids)
	if err != nil {
		return nil, err
	}

	works := NewFilter().Add(FilterWorkInstitution, ids...)
	articles := works.Clone().Add(FilterType, "article")
	authors := NewFilter().Add(FilterAuthorInstitution, ids...)

	stats := &Stats{InstitutionIDs: ids}
	var groups []GroupByEntry

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		n, err := s.source.Count(gctx, EntityWorks, works)
		stats.Timings.Works = time.Since(start)
		stats.Works = n
		return err
	})
	g.Go(func() error {
		start := time.Now()
		res, err := s.source.GroupBy(gctx, EntityWorks, articles, FilterPublicationYear)
		stats.Timings.Articles = time.Since(start)
		groups = res
		return err
	})
	g.Go(func() error {
		start := time.Now()
		n, err := s.source.Count(gctx, EntityAuthors, authors)
		stats.Timings.Authors = time.Since(start)
		stats.Authors = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Works = max(stats.Works, 0)
	stats.Authors = max(stats.Authors, 0)
	stats.Years, stats.Before = BucketYears(groups, s.now().Year(), s.years)
	stats.Timings.Total = stats.Timings.Works + stats.Timings.Articles + stats.Timings.Authors

	slog.DebugContext(ctx, "OpenAlex institution stats computed",
		"event", "openalex_stats",
		"institutions", len(ids),
		"works", stats.Works,
		"authors", stats.Authors,
		"total_ms", stats.Timings.Total.Milliseconds())
	return stats, nil
}
