package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/viant/sfreport/model"
)

const (
	// SummaryFile is the archive entry describing the run.
	SummaryFile = "_EXPORT_SUMMARY.txt"
	// ReadmeFile is the only archive entry of a run without reports.
	ReadmeFile = "_README.txt"

	emptyOrgText       = "No reports found in this Salesforce org."
	emptySelectionText = "None of the selected reports were found in this Salesforce org."
	summaryTimestamp   = "2006-01-02 15:04:05"
)

func emptyFolderText(folder string) string {
	return fmt.Sprintf("No reports found in folder %s.", folder)
}

// Summary renders the plain text run summary.
func Summary(result *model.ExportResult, at time.Time) string {
	lines := []string{
		"SALESFORCE REPORT EXPORT SUMMARY",
		strings.Repeat("=", 40),
		"Export Date: " + at.Format(summaryTimestamp),
		"Instance: " + result.Instance,
		"API Version: " + result.APIVersion,
		"",
		fmt.Sprintf("Total Reports: %d", result.Total),
		fmt.Sprintf("Successful: %d", len(result.Successful)),
		fmt.Sprintf("Failed: %d", len(result.Failed)),
		"",
	}
	if len(result.Failed) > 0 {
		lines = append(lines, "FAILED REPORTS:", strings.Repeat("-", 40))
		for _, failure := range result.Failed {
			lines = append(lines,
				fmt.Sprintf("• %s (%s)", failure.Name, failure.Type),
				"  ID: "+failure.ID,
				"  Error: "+failure.Error,
				"")
		}
	}
	return strings.Join(lines, "\n")
}

// errorStub is written in place of the CSV of a report that failed.
func errorStub(failure *model.Failure) string {
	return "# Failed to export report\n" +
		"# Report Name: " + failure.Name + "\n" +
		"# Report ID: " + failure.ID + "\n" +
		"# Report Type: " + failure.Type + "\n" +
		"# Error: " + failure.Error + "\n"
}
