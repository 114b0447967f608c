// Package httpclient provides the single-attempt HTTP client used by the probes.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Error variables for HTTP client errors
var (
	// ErrRequestTimeout is returned when a request times out
	ErrRequestTimeout = errors.New("request timeout")
	// ErrBodyTooLarge is returned when a response body exceeds MaxBodySize
	ErrBodyTooLarge = errors.New("response body too large")
)

// MaxBodySize caps how much of a response body Fetch reads
const MaxBodySize = 8 << 20

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Body       []byte
}

// Client performs GET requests with a fixed timeout and default headers.
// It never retries: one failed attempt is final.
type Client struct {
	client *http.Client
	// defaultHeaders are headers applied to all requests
	defaultHeaders map[string]string
}

// New creates a client whose requests give up after timeout.
func New(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetHTTPClient sets a custom underlying HTTP client (useful for testing).
// The timeout of the current client is carried over when c has none.
func (c *Client) SetHTTPClient(client *http.Client) {
	if client.Timeout == 0 {
		client.Timeout = c.client.Timeout
	}
	c.client = client
}

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.client.Timeout
}

// SetDefaultHeaders sets default headers that will be applied to all requests.
func (c *Client) SetDefaultHeaders(headers map[string]string) {
	c.defaultHeaders = headers
}

// GetWithContext performs an HTTP GET request. The caller closes the body.
func (c *Client) GetWithContext(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	for key, value := range c.defaultHeaders {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeoutError(err) {
			return nil, fmt.Errorf("%w: %v", ErrRequestTimeout, err)
		}
		return nil, err
	}
	return resp, nil
}

// Fetch performs a GET request and reads the whole body. Non-2xx statuses are
// not errors; the caller inspects StatusCode.
func (c *Client) Fetch(ctx context.Context, url string) (*Response, error) {
	resp, err := c.GetWithContext(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		if isTimeoutError(err) {
			return nil, fmt.Errorf("%w: reading body: %v", ErrRequestTimeout, err)
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, MaxBodySize)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// isTimeoutError checks if an error is a timeout error.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	type timeoutError interface {
		Timeout() bool
	}
	var te timeoutError
	if errors.As(err, &te) {
		return te.Timeout()
	}
	return false
}
