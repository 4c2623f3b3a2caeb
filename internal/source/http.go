package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxDocumentBytes bounds a single fetched document.
const maxDocumentBytes = 8 << 20

// HTTPDoer is the subset of *http.Client the HTTP source needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTP fetches documents relative to a base URL, retrying transient failures.
type HTTP struct {
	client           HTTPDoer
	baseURL          string
	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
}

// NewHTTP returns an HTTP source. Zero option values default to a 20s
// timeout, 3 attempts, 500ms base delay and a 4s delay cap.
func NewHTTP(baseURL string, opts Options) *HTTP {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.RetryMax <= 0 {
		opts.RetryMax = 3
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 500 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 4 * time.Second
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTP{
		client:           client,
		baseURL:          strings.TrimRight(baseURL, "/"),
		retryMaxAttempts: opts.RetryMax,
		retryBaseDelay:   opts.BaseDelay,
		retryMaxDelay:    opts.MaxDelay,
	}
}

func (h *HTTP) Fetch(ctx context.Context, name string) (string, error) {
	clean, err := ValidateName(name)
	if err != nil {
		return "", fmt.Errorf("%q: %w", name, err)
	}
	endpoint := h.baseURL + "/" + escapePath(clean)

	backoff := h.retryBaseDelay
	var lastErr error
	for attempt := 1; attempt <= h.retryMaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		body, wait, err := h.fetchOnce(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable(err) || attempt == h.retryMaxAttempts {
			break
		}
		if wait <= 0 {
			wait = withJitter(backoff)
			backoff *= 2
		}
		// Retry-After hints are capped too.
		if h.retryMaxDelay > 0 && wait > h.retryMaxDelay {
			wait = h.retryMaxDelay
		}
		if err := sleep(ctx, wait); err != nil {
			return "", err
		}
	}
	return "", lastErr
}

// fetchOnce performs a single GET. The returned duration is the server's
// Retry-After hint, if any.
func (h *HTTP) fetchOnce(ctx context.Context, endpoint string) (string, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain, application/json;q=0.9, */*;q=0.5")
	resp, err := h.client.Do(req)
	if err != nil {
		return "", 0, &UnreachableError{Host: req.URL.Host, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		serr := &StatusError{URL: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		var wait time.Duration
		if ra := resp.Header.Get("Retry-After"); ra != "" && serr.Retryable() {
			if secs, err := parseRetryAfterSeconds(ra); err == nil && secs > 0 {
				wait = time.Duration(secs) * time.Second
			}
		}
		return "", wait, serr
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return "", 0, fmt.Errorf("read body: %w", err)
	}
	return string(b), 0, nil
}

func retryable(err error) bool {
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.Retryable()
	}
	var uerr *UnreachableError
	if errors.As(err, &uerr) {
		return isRetryableNetErr(uerr.Err)
	}
	return false
}

func isRetryableNetErr(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// net errors like timeouts
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	// EOF or connection reset
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}

// parseRetryAfterSeconds tries to interpret Retry-After header value as seconds or HTTP date.
func parseRetryAfterSeconds(v string) (int, error) {
	if s, err := strconv.Atoi(v); err == nil {
		return s, nil
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return int(d.Seconds()), nil
	}
	return 0, fmt.Errorf("invalid Retry-After: %q", v)
}

// withJitter returns a backoff duration with +/- 20% jitter applied.
func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 500 * time.Millisecond
	}
	f := 0.8 + rand.Float64()*0.4
	out := time.Duration(float64(d) * f)
	if out <= 0 {
		return d
	}
	return out
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
