package auth

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/viant/sfreport/client"
	"github.com/viant/sfreport/internal/xmlutil"
	"github.com/viant/sfreport/model"
)

const maxErrorBody = 500

var instancePattern = regexp.MustCompile(`^(https?://[^/]+)`)

// parseLoginResponse converts a SOAP login response into a session without APIVersion.
func parseLoginResponse(resp *client.Response) (*model.Session, error) {
	if resp.StatusCode != http.StatusOK {
		if fault := extractFault(resp.Body); fault != "" {
			return nil, &Error{Message: "Login failed: " + fault}
		}
		body := resp.Text()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &Error{Message: fmt.Sprintf("Login failed with HTTP %d: %s", resp.StatusCode, body)}
	}

	root, err := xmlutil.Parse(resp.Body)
	if err != nil {
		return nil, &Error{Message: "Failed to parse login response", Err: err}
	}
	if fault := root.Lookup(envelopeNamespace, "Fault"); fault != nil {
		message := "Unknown error"
		if faultString := fault.FindLocal("faultstring"); faultString != nil && strings.TrimSpace(faultString.Text) != "" {
			message = strings.TrimSpace(faultString.Text)
		}
		return nil, &Error{Message: "Login failed: " + message}
	}

	result := root.Lookup(partnerNamespace, "result")
	if result == nil {
		return nil, &Error{Err: ErrNoResult}
	}
	sessionID := result.LookupText(partnerNamespace, "sessionId")
	if sessionID == "" {
		return nil, &Error{Err: ErrNoSessionID}
	}
	serverURL := result.LookupText(partnerNamespace, "serverUrl")
	session := &model.Session{
		SessionID:   sessionID,
		ServerURL:   serverURL,
		InstanceURL: instanceURL(serverURL),
	}
	if userInfo := result.Lookup(partnerNamespace, "userInfo"); userInfo != nil {
		session.UserID = userInfo.LookupText(partnerNamespace, "userId")
		session.OrgID = userInfo.LookupText(partnerNamespace, "organizationId")
		session.UserName = userInfo.LookupText(partnerNamespace, "userFullName")
	}
	return session, nil
}

func instanceURL(serverURL string) string {
	if serverURL == "" {
		return ""
	}
	if match := instancePattern.FindStringSubmatch(serverURL); len(match) > 1 {
		return match[1]
	}
	return serverURL
}

// extractFault returns the faultstring of a SOAP fault, or failing that the first
// message/error element text, or "" when the body is not XML.
func extractFault(body []byte) string {
	root, err := xmlutil.Parse(body)
	if err != nil {
		return ""
	}
	var message string
	root.Walk(func(node *xmlutil.Node) bool {
		if strings.Contains(strings.ToLower(node.Local), "faultstring") {
			message = strings.TrimSpace(node.Text)
			return false
		}
		return true
	})
	if message != "" {
		return message
	}
	root.Walk(func(node *xmlutil.Node) bool {
		local := strings.ToLower(node.Local)
		if (strings.Contains(local, "message") || strings.Contains(local, "error")) && strings.TrimSpace(node.Text) != "" {
			message = strings.TrimSpace(node.Text)
			return false
		}
		return true
	})
	return message
}
