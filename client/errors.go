package client

import (
	"errors"
	"fmt"
)

// ErrRetriesExhausted matches (errors.Is) a RequestError raised after every attempt failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// RequestError describes a failed request: a non-retryable status, an exhausted
// retry budget or a transport failure on the final attempt.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Attempts   int
	Body       string
	Exhausted  bool
	Err        error
}

func (e *RequestError) Error() string {
	cause := "unknown error"
	switch {
	case e.Err != nil:
		cause = e.Err.Error()
	case e.StatusCode != 0:
		cause = fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	if e.Exhausted {
		return fmt.Sprintf("request failed after %d retries: %s", e.Attempts, cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, cause)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRetriesExhausted && e.Exhausted
}
