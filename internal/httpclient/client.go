// Package httpclient is the outbound JSON client shared by the OpenAlex and
// GitHub integrations. Transient failures are retried with exponential
// backoff and jitter, honouring Retry-After.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMaxRetries = 2
	defaultBaseDelay  = 500 * time.Millisecond
	maxRetryAfter     = 30 * time.Second
	maxErrorBody      = 512
)

// Client performs GET and HEAD requests with retries.
type Client struct {
	http       *http.Client
	headers    http.Header
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithHeader sets a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Set(key, value) }
}

// WithRetries sets the number of additional attempts and the first delay.
func WithRetries(maxRetries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseDelay = baseDelay
	}
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: 20 * time.Second},
		headers:    make(http.Header),
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		logger:     slog.Default(),
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON fetches url and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	return c.retry(ctx, url, func() error {
		resp, err := c.do(ctx, http.MethodGet, url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return newHTTPError(resp, url)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &decodeError{err: fmt.Errorf("decode %s: %w", url, err)}
		}
		return nil
	})
}

// Head returns the status code of a HEAD request. Only transport failures
// are errors; any status is returned as is.
func (c *Client) Head(ctx context.Context, url string) (int, error) {
	var status int
	err := c.retry(ctx, url, func() error {
		resp, err := c.do(ctx, http.MethodHead, url)
		if err != nil {
			return err
		}
		resp.Body.Close()
		status = resp.StatusCode
		if status >= 500 || status == http.StatusTooManyRequests {
			return newHTTPError(resp, url)
		}
		return nil
	})
	if StatusCode(err) != 0 {
		return status, nil
	}
	return status, err
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, &decodeError{err: fmt.Errorf("build request: %w", err)}
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	return resp, nil
}

func (c *Client) retry(ctx context.Context, url string, fn func() error) error {
	err := fn()
	for attempt := 1; err != nil && attempt <= c.maxRetries; attempt++ {
		if !retryable(err) {
			return unwrapDecode(err)
		}
		delay := c.backoffDelay(attempt, err)
		c.logger.WarnContext(ctx, "retrying after transient error",
			"url", url,
			"attempt", attempt,
			"max_retries", c.maxRetries,
			"delay", delay,
			"error", err,
		)
		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			return fmt.Errorf("retry cancelled: %w", sleepErr)
		}
		err = fn()
	}
	return unwrapDecode(err)
}

// backoffDelay is baseDelay * 2^(attempt-1) with ±30% jitter, unless the
// server asked for a specific wait.
func (c *Client) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return min(httpErr.RetryAfter, maxRetryAfter)
	}
	delay := c.baseDelay << (attempt - 1)
	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

func newHTTPError(resp *http.Response, url string) *HTTPError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &HTTPError{
		StatusCode: resp.StatusCode,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		URL:        url,
		Body:       strings.TrimSpace(string(body)),
	}
}

// decodeError marks failures that happen after a good response; they are
// never retried.
type decodeError struct{ err error }

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var de *decodeError
	if errors.As(err, &de) {
		return false
	}
	return IsRetryable(err)
}

func unwrapDecode(err error) error {
	var de *decodeError
	if errors.As(err, &de) {
		return de.err
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
