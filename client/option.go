package client

import (
	"net/http"
	"time"

	"github.com/viant/sfreport/internal/clock"
)

// Option customises a Client.
type Option func(c *Client)

// WithHTTPClient sets the underlying http client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.http = httpClient }
}

// WithPolicy sets the retry policy.
func WithPolicy(policy Policy) Option {
	return func(c *Client) { c.policy = policy }
}

// WithSleeper replaces the backoff sleeper, used by tests to avoid real waits.
func WithSleeper(sleeper clock.Sleeper) Option {
	return func(c *Client) { c.sleep = sleeper }
}

// RequestOption customises a single request.
type RequestOption func(r *request)

type request struct {
	header           http.Header
	cookies          []*http.Cookie
	timeout          time.Duration
	maxRetries       int
	disableRedirects bool
}

// WithHeader adds a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *request) { r.header.Add(key, value) }
}

// WithBearer sets a bearer Authorization header.
func WithBearer(token string) RequestOption {
	return WithHeader("Authorization", "Bearer "+token)
}

// WithCookie adds a request cookie.
func WithCookie(name, value string) RequestOption {
	return func(r *request) {
		r.cookies = append(r.cookies, &http.Cookie{Name: name, Value: value})
	}
}

// WithTimeout bounds each attempt.
func WithTimeout(timeout time.Duration) RequestOption {
	return func(r *request) { r.timeout = timeout }
}

// WithRetries overrides the policy's attempt count for a single request.
func WithRetries(maxRetries int) RequestOption {
	return func(r *request) { r.maxRetries = maxRetries }
}

// WithoutRedirects returns 3xx responses instead of following them.
func WithoutRedirects() RequestOption {
	return func(r *request) { r.disableRedirects = true }
}
