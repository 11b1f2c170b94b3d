// Package auth exchanges Salesforce credentials for a session using the
// partner SOAP login call, so no Connected App or OAuth client is needed.
// After login the org's latest REST API version is discovered from the
// unauthenticated versions endpoint of the returned instance.
package auth
