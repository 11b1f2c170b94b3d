package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// NewFunc returns a new globally unique identifier as string.
var NewFunc = func() string { return uuid.New().String() }

// NewRunID returns a compact identifier for an export run.
func NewRunID() string {
	return strings.ReplaceAll(NewFunc(), "-", "")
}
