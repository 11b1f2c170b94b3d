package model

import "time"

// Failure records a report that could not be exported.
type Failure struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Error string `json:"error"`
}

// ExportResult summarises a finished pipeline run.
type ExportResult struct {
	RunID      string    `json:"runId"`
	ZipPath    string    `json:"zip"`
	Total      int       `json:"total"`
	Successful []string  `json:"successful"`
	Failed     []Failure `json:"failed"`
	APIVersion string    `json:"apiVersion"`
	FolderName string    `json:"folderName,omitempty"`
	Instance   string    `json:"instance,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt"`
}

// Succeeded reports whether every report in scope was exported.
func (r *ExportResult) Succeeded() bool {
	return len(r.Failed) == 0
}
