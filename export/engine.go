package export

import (
	"context"
	"time"

	"github.com/viant/sfreport/client"
	"github.com/viant/sfreport/model"
	"github.com/viant/sfreport/tracing"
)

// DefaultTimeout bounds a single report download.
const DefaultTimeout = 120 * time.Second

// SessionCookie carries the session id on UI export requests.
const SessionCookie = "sid"

// Exporter abstracts single report download.
type Exporter interface {
	ExportCSV(ctx context.Context, reportID string) (string, error)
}

// Engine downloads report CSV using the session cookie.
type Engine struct {
	client  *client.Client
	session *model.Session
	timeout time.Duration
}

// Option customises an Engine.
type Option func(e *Engine)

// WithClient sets the HTTP client.
func WithClient(httpClient *client.Client) Option {
	return func(e *Engine) { e.client = httpClient }
}

// WithTimeout bounds each export request.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) { e.timeout = timeout }
}

// URL returns the UI export URL of a report.
func (e *Engine) URL(reportID string) string {
	return e.session.BaseURL() + "/" + reportID + "?isdtp=p1&export=1&enc=UTF-8&xf=csv"
}

// ExportCSV returns the report CSV verbatim. Transport and retry failures surface as
// *client.RequestError; non-CSV bodies surface as *Error.
func (e *Engine) ExportCSV(ctx context.Context, reportID string) (content string, err error) {
	ctx, span := tracing.StartSpan(ctx, "export.report", tracing.KindInternal)
	span.WithAttributes(map[string]string{"sf.report": reportID})
	defer func() { tracing.EndSpan(span, err) }()

	resp, err := e.client.Get(ctx, e.URL(reportID),
		client.WithCookie(SessionCookie, e.session.SessionID),
		client.WithTimeout(e.timeout))
	if err != nil {
		return "", err
	}
	content = resp.Text()
	if classified := Classify(reportID, content); classified != nil {
		span.WithAttributes(map[string]string{"sf.export.kind": string(classified.Kind)})
		return "", classified
	}
	return content, nil
}

// New creates an Engine for session.
func New(session *model.Session, options ...Option) *Engine {
	ret := &Engine{session: session, timeout: DefaultTimeout}
	for _, option := range options {
		option(ret)
	}
	if ret.client == nil {
		ret.client = client.New()
	}
	return ret
}
