package sfreport

import "errors"

// ErrNotLoggedIn is returned by operations that need a session before Login succeeded.
var ErrNotLoggedIn = errors.New("not logged in")
