package auth

import "errors"

var (
	// ErrNoResult is returned when a 200 login response carries no result element.
	ErrNoResult = errors.New("could not parse login response - no result found")
	// ErrNoSessionID is returned when the login result has no sessionId.
	ErrNoSessionID = errors.New("no session ID in response")
)

// Error is returned for every login failure: bad credentials, SOAP faults,
// malformed responses and network errors.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
