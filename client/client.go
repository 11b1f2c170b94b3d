package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/viant/sfreport/internal/clock"
	"github.com/viant/sfreport/tracing"
)

const (
	defaultTimeout = 60 * time.Second
	maxErrorBody   = 500
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Client issues HTTP requests with retry semantics.
type Client struct {
	http   *http.Client
	policy Policy
	sleep  clock.Sleeper
}

// Get issues a GET request. A 200 response returns immediately; retryable statuses wait
// (Retry-After seconds when supplied, else the doubling backoff) and retry; other statuses
// fail immediately. Transport failures retry with the same backoff and the final one is
// returned wrapped in *RequestError.
func (c *Client) Get(ctx context.Context, URL string, options ...RequestOption) (resp *Response, err error) {
	req := c.newRequest(options)
	ctx, span := tracing.StartSpan(ctx, "http.get", tracing.KindClient)
	span.WithAttributes(map[string]string{"http.url": redact(URL)})
	defer func() { tracing.EndSpan(span, err) }()

	backoff := c.policy.InitialBackoff
	var lastErr error
	var lastStatus int
	for attempt := 1; attempt <= req.maxRetries; attempt++ {
		final := attempt == req.maxRetries
		resp, err = c.do(ctx, http.MethodGet, URL, nil, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &RequestError{Method: http.MethodGet, URL: URL, Attempts: attempt, Err: ctx.Err()}
			}
			if final {
				return nil, &RequestError{Method: http.MethodGet, URL: URL, Attempts: attempt, Err: err}
			}
			lastErr = err
			if err = c.sleep(ctx, backoff); err != nil {
				return nil, &RequestError{Method: http.MethodGet, URL: URL, Attempts: attempt, Err: err}
			}
			backoff = c.policy.next(backoff)
			continue
		}
		span.SetStatusFromHTTPCode(resp.StatusCode)
		if resp.StatusCode == http.StatusOK {
			return resp, nil
		}
		if !c.policy.retryable(resp.StatusCode) {
			return nil, &RequestError{Method: http.MethodGet, URL: URL, StatusCode: resp.StatusCode, Attempts: attempt, Body: truncate(resp.Text(), maxErrorBody)}
		}
		lastErr = nil
		lastStatus = resp.StatusCode
		if final {
			break
		}
		if retryAfter, ok := parseRetryAfter(resp.Header.Get("Retry-After")); ok {
			backoff = retryAfter
		}
		if err = c.sleep(ctx, backoff); err != nil {
			return nil, &RequestError{Method: http.MethodGet, URL: URL, Attempts: attempt, Err: err}
		}
		backoff = c.policy.next(backoff)
	}
	return nil, &RequestError{Method: http.MethodGet, URL: URL, StatusCode: lastStatus, Attempts: req.maxRetries, Exhausted: true, Err: lastErr}
}

// Post issues a single POST request without retries; any status is returned to the caller.
func (c *Client) Post(ctx context.Context, URL, contentType string, body []byte, options ...RequestOption) (resp *Response, err error) {
	req := c.newRequest(options)
	req.header.Set("Content-Type", contentType)
	ctx, span := tracing.StartSpan(ctx, "http.post", tracing.KindClient)
	span.WithAttributes(map[string]string{"http.url": redact(URL)})
	defer func() { tracing.EndSpan(span, err) }()
	resp, err = c.do(ctx, http.MethodPost, URL, body, req)
	if err != nil {
		return nil, &RequestError{Method: http.MethodPost, URL: URL, Attempts: 1, Err: err}
	}
	span.SetStatusFromHTTPCode(resp.StatusCode)
	return resp, nil
}

func (c *Client) newRequest(options []RequestOption) *request {
	req := &request{header: http.Header{}, timeout: defaultTimeout, maxRetries: c.policy.MaxRetries}
	for _, option := range options {
		option(req)
	}
	if req.maxRetries <= 0 {
		req.maxRetries = 1
	}
	return req
}

func (c *Client) do(ctx context.Context, method, URL string, body []byte, req *request) (*Response, error) {
	if req.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.timeout)
		defer cancel()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, method, URL, reader)
	if err != nil {
		return nil, err
	}
	for key, values := range req.header {
		for _, value := range values {
			httpRequest.Header.Add(key, value)
		}
	}
	for _, cookie := range req.cookies {
		httpRequest.AddCookie(cookie)
	}
	httpClient := c.http
	if req.disableRedirects {
		clone := *c.http
		clone.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
		httpClient = &clone
	}
	httpResponse, err := httpClient.Do(httpRequest)
	if err != nil {
		return nil, err
	}
	defer httpResponse.Body.Close()
	data, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: httpResponse.StatusCode, Header: httpResponse.Header, Body: data}, nil
}

func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}

// redact drops the query string so session material never lands in span attributes.
func redact(URL string) string {
	if index := strings.IndexByte(URL, '?'); index != -1 {
		return URL[:index]
	}
	return URL
}

// New creates a client with DefaultPolicy and http.DefaultClient.
func New(options ...Option) *Client {
	ret := &Client{http: http.DefaultClient, policy: DefaultPolicy(), sleep: clock.Sleep}
	for _, option := range options {
		option(ret)
	}
	if ret.http == nil {
		ret.http = http.DefaultClient
	}
	if ret.sleep == nil {
		ret.sleep = clock.Sleep
	}
	return ret
}
