// Package progress keeps the counters of a single export run and forwards every
// change to an optional caller supplied callback.
package progress
