// Package health runs the dependency checks behind /health.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Status of one check.
type Status string

const (
	StatusOK   Status = "ok"
	StatusFail Status = "fail"
)

// Check is one named probe. Run returns a short human message on success.
type Check struct {
	Name string
	Run  func(ctx context.Context) (string, error)
}

// Result is the outcome of a check.
type Result struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Latency   time.Duration `json:"-"`
	LatencyMs int64         `json:"latency_ms"`
	Message   string        `json:"message,omitempty"`
}

// Report aggregates the results of a run.
type Report struct {
	Status    Status    `json:"status"`
	CheckedAt time.Time `json:"checked_at"`
	Results   []Result  `json:"results"`
}

// OK reports whether every check passed.
func (r Report) OK() bool { return r.Status == StatusOK }

// Checker runs checks one after the other.
type Checker struct {
	checks  []Check
	timeout time.Duration
}

// NewChecker creates a Checker. Each check gets its own timeout.
func NewChecker(timeout time.Duration, checks ...Check) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{checks: checks, timeout: timeout}
}

// Names lists the configured checks in run order.
func (c *Checker) Names() []string {
	names := make([]string, len(c.checks))
	for i, ch := range c.checks {
		names[i] = ch.Name
	}
	return names
}

// Run executes the checks sequentially. onResult, when not nil, is called
// as each check completes.
func (c *Checker) Run(ctx context.Context, onResult func(Result)) Report {
	report := Report{Status: StatusOK, CheckedAt: time.Now().UTC(), Results: make([]Result, 0, len(c.checks))}
	for _, ch := range c.checks {
		res := c.runOne(ctx, ch)
		if res.Status != StatusOK {
			report.Status = StatusFail
		}
		report.Results = append(report.Results, res)
		if onResult != nil {
			onResult(res)
		}
	}
	return report
}

func (c *Checker) runOne(ctx context.Context, ch Check) Result {
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	msg, err := ch.Run(cctx)
	res := Result{Name: ch.Name, Status: StatusOK, Latency: time.Since(start), Message: msg}
	res.LatencyMs = res.Latency.Milliseconds()
	if err != nil {
		res.Status = StatusFail
		res.Message = err.Error()
		slog.WarnContext(ctx, "Health check failed", "event", "health_check_failed", "check", ch.Name, "error", err)
	}
	return res
}

// VersionSource reports the identity service version.
type VersionSource interface {
	Version(ctx context.Context) (string, error)
}

// Identity checks that the identity service answers.
func Identity(src VersionSource) Check {
	return Check{Name: "identity", Run: func(ctx context.Context) (string, error) {
		v, err := src.Version(ctx)
		if err != nil {
			return "", fmt.Errorf("identity service unreachable: %w", err)
		}
		return "version " + v, nil
	}}
}

// HeadRequester issues HEAD requests.
type HeadRequester interface {
	Head(ctx context.Context, url string) (int, error)
}

// PublicURL checks that url answers HEAD with 2xx or 3xx.
func PublicURL(client HeadRequester, url string) Check {
	return Check{Name: "public_url", Run: func(ctx context.Context) (string, error) {
		status, err := client.Head(ctx, url)
		if err != nil {
			return "", err
		}
		if status < 200 || status >= 400 {
			return "", fmt.Errorf("%s answered HTTP %d", url, status)
		}
		return fmt.Sprintf("HTTP %d", status), nil
	}}
}

// SchemaInspector lists tables and fields.
type SchemaInspector interface {
	Tables(ctx context.Context) ([]string, error)
	Fields(ctx context.Context, table string) ([]string, error)
}

// Collections checks that every required table exists.
func Collections(inspector SchemaInspector, required ...string) Check {
	return Check{Name: "collections", Run: func(ctx context.Context) (string, error) {
		tables, err := inspector.Tables(ctx)
		if err != nil {
			return "", err
		}
		if missing := missingFrom(tables, required); len(missing) > 0 {
			return "", fmt.Errorf("missing collections: %s", strings.Join(missing, ", "))
		}
		return fmt.Sprintf("%d collections present", len(required)), nil
	}}
}

// Attributes checks that table defines every required field.
func Attributes(inspector SchemaInspector, table string, required ...string) Check {
	return Check{Name: "attributes:" + table, Run: func(ctx context.Context) (string, error) {
		fields, err := inspector.Fields(ctx, table)
		if err != nil {
			return "", err
		}
		if missing := missingFrom(fields, required); len(missing) > 0 {
			return "", fmt.Errorf("%s is missing attributes: %s", table, strings.Join(missing, ", "))
		}
		return fmt.Sprintf("%d attributes present", len(required)), nil
	}}
}

func missingFrom(have, want []string) []string {
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[h] = true
	}
	var missing []string
	for _, w := range want {
		if !set[w] {
			missing = append(missing, w)
		}
	}
	return missing
}
