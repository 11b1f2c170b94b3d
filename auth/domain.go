package auth

import "strings"

const (
	// DomainProduction is the production login alias.
	DomainProduction = "login"
	// DomainSandbox is the sandbox login alias.
	DomainSandbox = "test"

	salesforceSuffix = ".salesforce.com"
)

// ResolveBaseURL turns a login domain into a base URL. The "login" and "test" aliases map
// to https://{alias}.salesforce.com; any other host gets https:// prefixed and the
// .salesforce.com suffix appended when missing. Values that already carry a scheme are
// used as given.
func ResolveBaseURL(domain string) string {
	domain = strings.TrimRight(strings.TrimSpace(domain), "/")
	switch domain {
	case "", DomainProduction:
		return "https://" + DomainProduction + salesforceSuffix
	case DomainSandbox:
		return "https://" + DomainSandbox + salesforceSuffix
	}
	if strings.HasPrefix(domain, "https://") || strings.HasPrefix(domain, "http://") {
		return domain
	}
	if !strings.HasSuffix(domain, salesforceSuffix) {
		domain += salesforceSuffix
	}
	return "https://" + domain
}
