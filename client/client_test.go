package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type reply struct {
	status     int
	retryAfter string
	body       string
}

func sequenceServer(t *testing.T, replies []reply) (*httptest.Server, *int32) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		index := int(atomic.AddInt32(&calls, 1)) - 1
		if index >= len(replies) {
			index = len(replies) - 1
		}
		current := replies[index]
		if current.retryAfter != "" {
			w.Header().Set("Retry-After", current.retryAfter)
		}
		w.WriteHeader(current.status)
		_, _ = w.Write([]byte(current.body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func recordingSleeper(waits *[]time.Duration) func(ctx context.Context, d time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
}

func TestClient_Get(t *testing.T) {
	var testCases = []struct {
		description   string
		replies       []reply
		expectBody    string
		expectWaits   []time.Duration
		expectCalls   int32
		expectErr     bool
		expectStatus  int
		expectExhaust bool
	}{
		{
			description: "immediate success",
			replies:     []reply{{status: 200, body: "a,b\n1,2\n"}},
			expectBody:  "a,b\n1,2\n",
			expectWaits: nil,
			expectCalls: 1,
		},
		{
			description: "retry-after then doubled backoff",
			replies:     []reply{{status: 503, retryAfter: "2"}, {status: 503}, {status: 200, body: "ok"}},
			expectBody:  "ok",
			expectWaits: []time.Duration{2 * time.Second, 4 * time.Second},
			expectCalls: 3,
		},
		{
			description: "backoff without retry-after",
			replies:     []reply{{status: 429}, {status: 502}, {status: 200, body: "ok"}},
			expectBody:  "ok",
			expectWaits: []time.Duration{time.Second, 2 * time.Second},
			expectCalls: 3,
		},
		{
			description: "unparseable retry-after falls back to backoff",
			replies:     []reply{{status: 503, retryAfter: "Wed, 21 Oct 2015 07:28:00 GMT"}, {status: 200, body: "ok"}},
			expectBody:  "ok",
			expectWaits: []time.Duration{time.Second},
			expectCalls: 2,
		},
		{
			description:  "non retryable status fails fast",
			replies:      []reply{{status: 404, body: "missing"}},
			expectErr:    true,
			expectStatus: 404,
			expectCalls:  1,
		},
		{
			description:   "exhausted retries",
			replies:       []reply{{status: 500}, {status: 500}, {status: 500}},
			expectErr:     true,
			expectStatus:  500,
			expectExhaust: true,
			expectWaits:   []time.Duration{time.Second, 2 * time.Second},
			expectCalls:   3,
		},
	}

	for _, testCase := range testCases {
		server, calls := sequenceServer(t, testCase.replies)
		var waits []time.Duration
		srv := New(WithSleeper(recordingSleeper(&waits)))
		resp, err := srv.Get(context.Background(), server.URL)
		assert.Equal(t, testCase.expectCalls, atomic.LoadInt32(calls), testCase.description)
		assert.Equal(t, testCase.expectWaits, waits, testCase.description)
		if testCase.expectErr {
			var requestErr *RequestError
			if assert.True(t, errors.As(err, &requestErr), testCase.description) {
				assert.Equal(t, testCase.expectStatus, requestErr.StatusCode, testCase.description)
			}
			assert.Equal(t, testCase.expectExhaust, errors.Is(err, ErrRetriesExhausted), testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectBody, resp.Text(), testCase.description)
	}
}

func TestClient_Get_BackoffCap(t *testing.T) {
	server, _ := sequenceServer(t, []reply{{status: 503, retryAfter: "50"}, {status: 503}, {status: 503}, {status: 200}})
	var waits []time.Duration
	srv := New(WithSleeper(recordingSleeper(&waits)), WithPolicy(Policy{MaxRetries: 4, InitialBackoff: time.Second, MaxBackoff: 60 * time.Second, RetryStatuses: []int{503}}))
	_, err := srv.Get(context.Background(), server.URL)
	assert.NoError(t, err)
	assert.Equal(t, []time.Duration{50 * time.Second, 60 * time.Second, 60 * time.Second}, waits)
}

func TestClient_Get_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	URL := server.URL
	server.Close()

	var waits []time.Duration
	srv := New(WithSleeper(recordingSleeper(&waits)))
	_, err := srv.Get(context.Background(), URL)
	var requestErr *RequestError
	if assert.True(t, errors.As(err, &requestErr)) {
		assert.Equal(t, 3, requestErr.Attempts)
		assert.NotNil(t, requestErr.Unwrap())
	}
	assert.False(t, errors.Is(err, ErrRetriesExhausted))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, waits)
}

func TestClient_Get_HeadersAndCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("sid")
		if err != nil || cookie.Value != "token" || r.Header.Get("Authorization") != "Bearer abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	srv := New()
	resp, err := srv.Get(context.Background(), server.URL, WithBearer("abc"), WithCookie("sid", "token"), WithTimeout(time.Second))
	if assert.NoError(t, err) {
		assert.Equal(t, "ok", resp.Text())
	}
}

func TestClient_Get_WithoutRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.Redirect(w, r, "/end", http.StatusFound)
			return
		}
		_, _ = w.Write([]byte("end"))
	}))
	defer server.Close()

	srv := New()
	resp, err := srv.Get(context.Background(), server.URL+"/start")
	if assert.NoError(t, err) {
		assert.Equal(t, "end", resp.Text())
	}
	_, err = srv.Get(context.Background(), server.URL+"/start", WithoutRedirects())
	var requestErr *RequestError
	if assert.True(t, errors.As(err, &requestErr)) {
		assert.Equal(t, http.StatusFound, requestErr.StatusCode)
	}
}

func TestClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "text/xml; charset=UTF-8", r.Header.Get("Content-Type"))
		assert.Equal(t, "login", r.Header.Get("SOAPAction"))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	srv := New()
	resp, err := srv.Post(context.Background(), server.URL, "text/xml; charset=UTF-8", []byte("<x/>"), WithHeader("SOAPAction", "login"))
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	}
}
