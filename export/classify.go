package export

import (
	"strings"
	"unicode/utf8"
)

// Limits are in characters.
const (
	inlineErrorLimit  = 500
	inlineFirstLineAt = 100
)

var (
	loginMarkers  = []string{"login.salesforce.com", "ec=302"}
	accessMarkers = []string{"You do not have access"}
)

// Classify inspects an export body and returns a non-nil *Error when the body is
// not CSV. Checks run in order: HTML page, empty body, inline error payload.
func Classify(reportID, content string) *Error {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<html") {
		switch {
		case containsAny(content, loginMarkers):
			return newError(KindSessionExpired, reportID)
		case containsAny(content, accessMarkers):
			return newError(KindAccessDenied, reportID)
		default:
			return newError(KindHTMLGeneric, reportID)
		}
	}
	if trimmed == "" {
		return newError(KindEmpty, reportID)
	}
	firstLine := content
	if index := strings.IndexByte(content, '\n'); index != -1 {
		firstLine = content[:index]
	}
	if strings.Contains(firstLine, "Error") && utf8.RuneCountInString(content) < inlineErrorLimit {
		if runes := []rune(firstLine); len(runes) > inlineFirstLineAt {
			firstLine = string(runes[:inlineFirstLineAt])
		}
		ret := newError(KindInline, reportID)
		ret.Message = messages[KindInline] + ": " + firstLine
		return ret
	}
	return nil
}

func containsAny(content string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}
