package catalog

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/sfreport/client"
	"github.com/viant/sfreport/model"
)

func newTestCatalog(t *testing.T, handler http.HandlerFunc) *Catalog {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	session := &model.Session{SessionID: "sess", InstanceURL: server.URL + "/", APIVersion: "61.0"}
	return New(session, WithClient(client.New(client.WithSleeper(func(ctx context.Context, d time.Duration) error { return nil }))))
}

func TestCatalog_ListReports(t *testing.T) {
	var testCases = []struct {
		description string
		body        string
		expectIDs   []string
		expectErr   bool
	}{
		{
			description: "bare list",
			body:        `[{"id":"00O1","name":"Pipeline","reportFormat":"SUMMARY"},{"id":"00O2","name":"Leads"}]`,
			expectIDs:   []string{"00O1", "00O2"},
		},
		{
			description: "reports key",
			body:        `{"reports":[{"id":"00O3","name":"Cases"}]}`,
			expectIDs:   []string{"00O3"},
		},
		{
			description: "records key",
			body:        `{"records":[{"Id":"00O4","Name":"Accounts","Format":"MATRIX"}]}`,
			expectIDs:   []string{"00O4"},
		},
		{
			description: "unknown object shape is empty",
			body:        `{"something":"else"}`,
			expectIDs:   []string{},
		},
		{
			description: "empty list",
			body:        `[]`,
			expectIDs:   []string{},
		},
		{
			description: "entries without id are skipped",
			body:        `[{"name":"ghost"},{"id":"00O5"}]`,
			expectIDs:   []string{"00O5"},
		},
		{
			description: "invalid json",
			body:        `<html>`,
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		var authorization, path string
		catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			authorization = r.Header.Get("Authorization")
			path = r.URL.Path
			_, _ = w.Write([]byte(testCase.body))
		})
		reports, err := catalog.ListReports(context.Background())
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, "Bearer sess", authorization, testCase.description)
		assert.Equal(t, "/services/data/v61.0/analytics/reports", path, testCase.description)
		var ids = []string{}
		for _, report := range reports {
			ids = append(ids, report.ID)
		}
		assert.Equal(t, testCase.expectIDs, ids, testCase.description)
	}
}

func TestCatalog_ListReports_Fields(t *testing.T) {
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"records":[{"Id":"00O4","Name":"Accounts","Format":"MATRIX","OwnerId":"00l1","FolderName":"Sales"}]}`))
	})
	reports, err := catalog.ListReports(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []*model.ReportMetadata{{ID: "00O4", Name: "Accounts", ReportFormat: "MATRIX", FolderID: "00l1", FolderName: "Sales"}}, reports)
}

func TestToReports_SkippedEntriesAreLogged(t *testing.T) {
	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	reports := toReports([]map[string]interface{}{{"name": "ghost"}, {"id": "00O5", "name": "Real"}})
	assert.Len(t, reports, 1)
	assert.Contains(t, logged.String(), `skipping report listing entry without id: "ghost"`)

	folders := toFolders([]map[string]interface{}{{"Name": "Orphan"}, {"Name": "System", "Id": "00l9"}})
	assert.Empty(t, folders)
	assert.Contains(t, logged.String(), `skipping folder entry without id: "Orphan"`)
	assert.NotContains(t, logged.String(), "System")
}

func TestCatalog_ListReports_Failure(t *testing.T) {
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	reports, err := catalog.ListReports(context.Background())
	assert.Nil(t, reports)
	assert.Error(t, err)
}

func TestCatalog_ListReportFolders(t *testing.T) {
	var queries []string
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/services/data/v61.0/query":
			queries = append(queries, r.URL.Query().Get("q"))
			_, _ = w.Write([]byte(`{"done":false,"nextRecordsUrl":"/services/data/v61.0/query/01g-2000","records":[
				{"Id":"00l1","Name":"Sales","AccessType":"Public"},
				{"Id":"00l2","Name":"Automated Process","AccessType":"Hidden"},
				{"Id":"00l3","Name":"__internal","AccessType":"Hidden"}]}`))
		case "/services/data/v61.0/query/01g-2000":
			_, _ = w.Write([]byte(`{"done":true,"records":[
				{"Id":"00l4","Name":"Marketing","AccessType":"Shared"},
				{"Id":"00l5","Name":"System","AccessType":"Hidden"},
				{"Id":"00l6","Name":"hidden"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	folders, err := catalog.ListReportFolders(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []*model.FolderMetadata{
		{ID: "00l1", Name: "Sales", Type: "Public"},
		{ID: "00l4", Name: "Marketing", Type: "Shared"},
	}, folders)
	if assert.Len(t, queries, 1) {
		assert.True(t, strings.HasPrefix(queries[0], "SELECT Id, Name, Type, AccessType FROM Folder"))
	}
}

func TestCatalog_ListFolderReports(t *testing.T) {
	var query string
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"done":true,"records":[
			{"Id":"r1","Name":"One","Format":"TABULAR","OwnerId":"X","FolderName":"Ops"},
			{"Id":"r2","Name":"Two","Format":"SUMMARY","OwnerId":"Y","FolderName":"Other"},
			{"Id":"r3","Name":"Three","OwnerId":"X","FolderName":"Ops"}]}`))
	})
	reports, err := catalog.ListFolderReports(context.Background(), "X")
	assert.NoError(t, err)
	assert.Equal(t, "SELECT Id, Name, Format, OwnerId, FolderName FROM Report WHERE OwnerId = 'X'", query)
	if assert.Len(t, reports, 2) {
		assert.Equal(t, "r1", reports[0].ID)
		assert.Equal(t, "r3", reports[1].ID)
		assert.Equal(t, "TABULAR", reports[1].Format())
	}
}

func TestEscapeSOQL(t *testing.T) {
	assert.Equal(t, `a\'b\\c`, escapeSOQL(`a'b\c`))
}

func TestSelect(t *testing.T) {
	reports := []*model.ReportMetadata{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}
	selected := Select(reports, []string{"r3", "r1", "missing"})
	if assert.Len(t, selected, 2) {
		assert.Equal(t, "r1", selected[0].ID)
		assert.Equal(t, "r3", selected[1].ID)
	}
	assert.Empty(t, Select(reports, nil))
}

func TestIsNoiseFolder(t *testing.T) {
	var testCases = []struct {
		name   string
		expect bool
	}{
		{name: "Sales", expect: false},
		{name: "Automated Process", expect: true},
		{name: "automated-process", expect: true},
		{name: "SYSTEM", expect: true},
		{name: "Hidden", expect: true},
		{name: "__private", expect: true},
		{name: "", expect: true},
		{name: "System Reports", expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, isNoiseFolder(testCase.name), testCase.name)
	}
}
