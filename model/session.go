package model

import "strings"

// Session represents an authenticated Salesforce context returned by login.
type Session struct {
	SessionID   string `json:"sessionId" yaml:"sessionId"`
	InstanceURL string `json:"instanceUrl" yaml:"instanceUrl"`
	ServerURL   string `json:"serverUrl,omitempty" yaml:"serverUrl,omitempty"`
	UserID      string `json:"userId,omitempty" yaml:"userId,omitempty"`
	OrgID       string `json:"orgId,omitempty" yaml:"orgId,omitempty"`
	UserName    string `json:"userName,omitempty" yaml:"userName,omitempty"`
	APIVersion  string `json:"apiVersion" yaml:"apiVersion"`
}

// VersionPath returns the API version in REST path form, e.g. "v61.0".
func (s *Session) VersionPath() string {
	return VersionPath(s.APIVersion)
}

// VersionPath normalises a version string ("61.0" or "v61.0") into "v61.0".
func VersionPath(version string) string {
	if version == "" || strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

// BaseURL returns the instance URL without a trailing slash.
func (s *Session) BaseURL() string {
	return strings.TrimRight(s.InstanceURL, "/")
}
