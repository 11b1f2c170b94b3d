package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/sfreport/model"
)

func TestSummary(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	var testCases = []struct {
		description string
		result      *model.ExportResult
		expect      string
	}{
		{
			description: "all successful",
			result:      &model.ExportResult{Instance: "https://acme.my.salesforce.com", APIVersion: "v61.0", Total: 2, Successful: []string{"a", "b"}},
			expect: "SALESFORCE REPORT EXPORT SUMMARY\n" +
				"========================================\n" +
				"Export Date: 2024-03-05 14:07:09\n" +
				"Instance: https://acme.my.salesforce.com\n" +
				"API Version: v61.0\n" +
				"\n" +
				"Total Reports: 2\n" +
				"Successful: 2\n" +
				"Failed: 0\n",
		},
		{
			description: "with failures",
			result: &model.ExportResult{Instance: "https://acme.my.salesforce.com", APIVersion: "v61.0", Total: 2, Successful: []string{"a"},
				Failed: []model.Failure{{ID: "00O2", Name: "Leads", Type: "TABULAR", Error: "Access denied to this report."}}},
			expect: "SALESFORCE REPORT EXPORT SUMMARY\n" +
				"========================================\n" +
				"Export Date: 2024-03-05 14:07:09\n" +
				"Instance: https://acme.my.salesforce.com\n" +
				"API Version: v61.0\n" +
				"\n" +
				"Total Reports: 2\n" +
				"Successful: 1\n" +
				"Failed: 1\n" +
				"\n" +
				"FAILED REPORTS:\n" +
				"----------------------------------------\n" +
				"• Leads (TABULAR)\n" +
				"  ID: 00O2\n" +
				"  Error: Access denied to this report.\n",
		},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Summary(testCase.result, at), testCase.description)
	}
}

func TestErrorStub(t *testing.T) {
	stub := errorStub(&model.Failure{ID: "00O1", Name: "Pipeline", Type: "SUMMARY", Error: "boom"})
	assert.Equal(t, "# Failed to export report\n# Report Name: Pipeline\n# Report ID: 00O1\n# Report Type: SUMMARY\n# Error: boom\n", stub)
}
