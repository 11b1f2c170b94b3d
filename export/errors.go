package export

import "errors"

// Kind classifies an export failure.
type Kind string

const (
	KindEmpty          Kind = "empty"
	KindInline         Kind = "inline"
	KindSessionExpired Kind = "sessionExpired"
	KindAccessDenied   Kind = "accessDenied"
	KindHTMLGeneric    Kind = "htmlGeneric"
)

var (
	ErrEmpty          = errors.New("empty export response")
	ErrSessionExpired = errors.New("export session expired")
	ErrAccessDenied   = errors.New("export access denied")
	ErrHTMLGeneric    = errors.New("export returned html")
	ErrInline         = errors.New("export returned inline error")
)

// messages are the user facing texts recorded in failure stubs and summaries.
var messages = map[Kind]string{
	KindEmpty:          "Empty response received",
	KindSessionExpired: "Session expired or invalid. Please re-login.",
	KindAccessDenied:   "Access denied to this report.",
	KindHTMLGeneric:    "Received HTML instead of CSV. Report may not be exportable.",
	KindInline:         "Salesforce error",
}

var kindErrors = map[Kind]error{
	KindEmpty:          ErrEmpty,
	KindInline:         ErrInline,
	KindSessionExpired: ErrSessionExpired,
	KindAccessDenied:   ErrAccessDenied,
	KindHTMLGeneric:    ErrHTMLGeneric,
}

// Error is a classified export failure for one report.
type Error struct {
	Kind     Kind
	ReportID string
	Message  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if message, ok := messages[e.Kind]; ok {
		return message
	}
	return string(e.Kind)
}

// Is matches the sentinel of the error kind.
func (e *Error) Is(target error) bool {
	return kindErrors[e.Kind] == target
}

func newError(kind Kind, reportID string) *Error {
	return &Error{Kind: kind, ReportID: reportID}
}
