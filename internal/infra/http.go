// Package infra provides shared infrastructure used by the upstream
// access layer: an HTTP GET helper and a token-bucket rate limiter.
package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userAgent is sent on every request. Yahoo rejects requests with an
// empty or default Go user agent.
const userAgent = "Mozilla/5.0 (compatible; tsemcp/1.0)"

// DefaultHTTPClient returns an http.Client with the given timeout.
func DefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// DoGet performs a GET request and returns the response body and status
// code. The caller must close the body on success. Non-2xx statuses are
// returned as an error with the body drained and closed.
func DoGet(ctx context.Context, client *http.Client, url string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	return resp.Body, resp.StatusCode, nil
}
