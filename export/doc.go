// Package export downloads a single report as CSV through the UI export URL and
// classifies responses that are not CSV (login pages, access-denied pages,
// inline error payloads, empty bodies) into typed errors.
package export
