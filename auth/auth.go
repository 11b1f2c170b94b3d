package auth

import (
	"context"
	"log"
	"time"

	"github.com/viant/sfreport/client"
	"github.com/viant/sfreport/model"
	"github.com/viant/sfreport/tracing"
)

const defaultLoginTimeout = 30 * time.Second

// Authenticator performs SOAP logins.
type Authenticator struct {
	client          *client.Client
	loginTimeout    time.Duration
	fallbackVersion string
}

// Option customises an Authenticator.
type Option func(a *Authenticator)

// WithClient sets the HTTP client.
func WithClient(httpClient *client.Client) Option {
	return func(a *Authenticator) { a.client = httpClient }
}

// WithLoginTimeout bounds the login POST.
func WithLoginTimeout(timeout time.Duration) Option {
	return func(a *Authenticator) { a.loginTimeout = timeout }
}

// WithFallbackVersion sets the API version used when discovery fails.
func WithFallbackVersion(version string) Option {
	return func(a *Authenticator) { a.fallbackVersion = version }
}

// Login exchanges credentials for a session. The security token is appended to the
// password verbatim and may be empty for allow-listed networks. The login POST is never
// retried. Version discovery failures never fail the login; the fallback version is used.
func (a *Authenticator) Login(ctx context.Context, username, password, securityToken, domain string) (session *model.Session, err error) {
	baseURL := ResolveBaseURL(domain)
	ctx, span := tracing.StartSpan(ctx, "auth.login", tracing.KindInternal)
	span.WithAttributes(map[string]string{"sf.login_url": baseURL})
	defer func() { tracing.EndSpan(span, err) }()

	body := loginEnvelope(username, password+securityToken)
	resp, err := a.client.Post(ctx, loginURL(baseURL), "text/xml; charset=UTF-8", []byte(body),
		client.WithHeader("SOAPAction", "login"),
		client.WithTimeout(a.loginTimeout))
	if err != nil {
		return nil, &Error{Message: "Network error during login", Err: err}
	}
	if session, err = parseLoginResponse(resp); err != nil {
		return nil, err
	}
	session.APIVersion = a.discoverVersion(ctx, session.InstanceURL)
	span.WithAttributes(map[string]string{"sf.instance": session.InstanceURL, "sf.api_version": session.APIVersion})
	return session, nil
}

func (a *Authenticator) discoverVersion(ctx context.Context, instanceURL string) string {
	if instanceURL == "" {
		return a.fallbackVersion
	}
	version, err := LatestVersion(ctx, a.client, instanceURL)
	if err != nil {
		log.Printf("api version discovery failed for %s, using %s: %v", instanceURL, a.fallbackVersion, err)
		return a.fallbackVersion
	}
	return version
}

// New creates an Authenticator.
func New(options ...Option) *Authenticator {
	ret := &Authenticator{loginTimeout: defaultLoginTimeout, fallbackVersion: FallbackVersion}
	for _, option := range options {
		option(ret)
	}
	if ret.client == nil {
		ret.client = client.New()
	}
	return ret
}
