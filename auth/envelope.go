package auth

import (
	"fmt"
	"strings"
)

const (
	// SOAPVersion is the partner API version used for login, independent of the org's REST version.
	SOAPVersion = "58.0"

	envelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	partnerNamespace  = "urn:partner.soap.sforce.com"

	clientName = "SalesforceReportExporter"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func escapeXML(text string) string {
	return xmlEscaper.Replace(text)
}

func loginURL(baseURL string) string {
	return baseURL + "/services/Soap/u/" + SOAPVersion
}

func loginEnvelope(username, password string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8" ?>
<env:Envelope xmlns:xsd="http://www.w3.org/2001/XMLSchema"
    xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
    xmlns:env="%s"
    xmlns:urn="%s">
  <env:Header>
    <urn:CallOptions>
      <urn:client>%s</urn:client>
    </urn:CallOptions>
  </env:Header>
  <env:Body>
    <n1:login xmlns:n1="%s">
      <n1:username>%s</n1:username>
      <n1:password>%s</n1:password>
    </n1:login>
  </env:Body>
</env:Envelope>`, envelopeNamespace, partnerNamespace, clientName, partnerNamespace, escapeXML(username), escapeXML(password))
}
