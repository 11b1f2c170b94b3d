// Package idgen wraps the UUID generator so that it can be stubbed in tests.
// Run identifiers are opaque strings; callers should not parse them.
package idgen
