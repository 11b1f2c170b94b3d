// Package tracing integrates OpenTelemetry with the exporter so that login,
// catalog listing and per-report exports are recorded as spans.  Tracing is
// opt-in: until Init is called spans are no-ops.
package tracing
