package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/viant/sfreport/client"
	"github.com/viant/sfreport/model"
	"github.com/viant/sfreport/tracing"
)

const defaultTimeout = 60 * time.Second

// maxPages bounds nextRecordsUrl chasing.
const maxPages = 1000

// Catalog lists reports and folders for one session.
type Catalog struct {
	client  *client.Client
	session *model.Session
	timeout time.Duration
}

// Option customises a Catalog.
type Option func(c *Catalog)

// WithClient sets the HTTP client.
func WithClient(httpClient *client.Client) Option {
	return func(c *Catalog) { c.client = httpClient }
}

// WithTimeout bounds each listing request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Catalog) { c.timeout = timeout }
}

// ListReports returns every report visible to the session. An org without reports
// yields an empty slice.
func (c *Catalog) ListReports(ctx context.Context) (reports []*model.ReportMetadata, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.listReports", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	URL := c.dataURL("/analytics/reports")
	resp, err := c.client.Get(ctx, URL, c.requestOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	if reports, err = decodeReports(resp.Body); err != nil {
		return nil, err
	}
	span.WithAttributes(map[string]string{"sf.reports": fmt.Sprint(len(reports))})
	return reports, nil
}

// ListReportFolders returns report folders, excluding system and hidden ones.
func (c *Catalog) ListReportFolders(ctx context.Context) (folders []*model.FolderMetadata, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.listReportFolders", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	records, err := c.query(ctx, "SELECT Id, Name, Type, AccessType FROM Folder WHERE Type = 'Report'")
	if err != nil {
		return nil, fmt.Errorf("failed to list report folders: %w", err)
	}
	return toFolders(records), nil
}

// ListFolderReports returns the reports stored in folderID. A report's OwnerId is
// the id of the folder holding it.
func (c *Catalog) ListFolderReports(ctx context.Context, folderID string) (reports []*model.ReportMetadata, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.listFolderReports", tracing.KindInternal)
	span.WithAttributes(map[string]string{"sf.folder": folderID})
	defer func() { tracing.EndSpan(span, err) }()

	soql := "SELECT Id, Name, Format, OwnerId, FolderName FROM Report WHERE OwnerId = '" + escapeSOQL(folderID) + "'"
	records, err := c.query(ctx, soql)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports in folder %s: %w", folderID, err)
	}
	return InFolder(toReports(records), folderID), nil
}

type queryResult struct {
	Done           bool                     `json:"done"`
	NextRecordsURL string                   `json:"nextRecordsUrl"`
	Records        []map[string]interface{} `json:"records"`
}

// query runs a SOQL query and follows nextRecordsUrl until the result is done.
func (c *Catalog) query(ctx context.Context, soql string) ([]map[string]interface{}, error) {
	URL := c.dataURL("/query?q=" + url.QueryEscape(soql))
	var records []map[string]interface{}
	for page := 0; page < maxPages; page++ {
		resp, err := c.client.Get(ctx, URL, c.requestOptions()...)
		if err != nil {
			return nil, err
		}
		result := &queryResult{}
		if err = json.Unmarshal(resp.Body, result); err != nil {
			return nil, fmt.Errorf("failed to decode query result: %w", err)
		}
		records = append(records, result.Records...)
		if result.Done || result.NextRecordsURL == "" {
			return records, nil
		}
		URL = c.session.BaseURL() + result.NextRecordsURL
	}
	return nil, fmt.Errorf("query exceeded %d pages: %s", maxPages, soql)
}

func (c *Catalog) dataURL(path string) string {
	return c.session.BaseURL() + "/services/data/" + c.session.VersionPath() + path
}

func (c *Catalog) requestOptions() []client.RequestOption {
	return []client.RequestOption{
		client.WithBearer(c.session.SessionID),
		client.WithHeader("Accept", "application/json"),
		client.WithTimeout(c.timeout),
	}
}

var soqlEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func escapeSOQL(value string) string {
	return soqlEscaper.Replace(value)
}

// New creates a Catalog for session.
func New(session *model.Session, options ...Option) *Catalog {
	ret := &Catalog{session: session, timeout: defaultTimeout}
	for _, option := range options {
		option(ret)
	}
	if ret.client == nil {
		ret.client = client.New()
	}
	return ret
}
