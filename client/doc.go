// Package client implements the HTTP GET client shared by the authenticator,
// the report catalog and the CSV export engine.  GET requests are retried
// with exponential backoff on transport failures and on rate-limit or
// gateway statuses, honouring Retry-After when the server supplies one.
package client
