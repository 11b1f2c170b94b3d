package model

// DefaultReportFormat is recorded for reports whose catalog entry carries no format.
const DefaultReportFormat = "TABULAR"

// ReportMetadata is a catalog snapshot of a single report.
type ReportMetadata struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ReportFormat string `json:"reportFormat,omitempty"`
	FolderID     string `json:"folderId,omitempty"`
	FolderName   string `json:"folderName,omitempty"`
}

// DisplayName returns the report name, falling back to its id.
func (r *ReportMetadata) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Format returns the report format or DefaultReportFormat.
func (r *ReportMetadata) Format() string {
	if r.ReportFormat != "" {
		return r.ReportFormat
	}
	return DefaultReportFormat
}

// FolderMetadata is a catalog snapshot of a report folder.
type FolderMetadata struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}
