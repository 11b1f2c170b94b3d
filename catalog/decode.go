package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/viant/sfreport/model"
	"github.com/viant/toolbox"
)

// listing is the union of shapes the analytics endpoint is known to return:
// a bare array, or an object carrying the array under "reports" or "records".
type listing struct {
	items []map[string]interface{}
}

func (l *listing) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch actual := raw.(type) {
	case []interface{}:
		l.items = asRecords(actual)
	case map[string]interface{}:
		if reports, ok := actual["reports"].([]interface{}); ok {
			l.items = asRecords(reports)
		} else if records, ok := actual["records"].([]interface{}); ok {
			l.items = asRecords(records)
		}
	}
	return nil
}

func asRecords(values []interface{}) []map[string]interface{} {
	var result = make([]map[string]interface{}, 0, len(values))
	for _, value := range values {
		if record, ok := value.(map[string]interface{}); ok {
			result = append(result, record)
		}
	}
	return result
}

func decodeReports(data []byte) ([]*model.ReportMetadata, error) {
	var payload listing
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode report listing: %w", err)
	}
	return toReports(payload.items), nil
}

func toReports(records []map[string]interface{}) []*model.ReportMetadata {
	var result = make([]*model.ReportMetadata, 0, len(records))
	for _, record := range records {
		report := &model.ReportMetadata{
			ID:           field(record, "id", "Id"),
			Name:         field(record, "name", "Name"),
			ReportFormat: field(record, "reportFormat", "Format"),
			FolderID:     field(record, "folderId", "OwnerId"),
			FolderName:   field(record, "folderName", "FolderName"),
		}
		if report.ID == "" {
			log.Printf("skipping report listing entry without id: %q", report.Name)
			continue
		}
		result = append(result, report)
	}
	return result
}

func toFolders(records []map[string]interface{}) []*model.FolderMetadata {
	var result = make([]*model.FolderMetadata, 0, len(records))
	for _, record := range records {
		folder := &model.FolderMetadata{
			ID:   field(record, "Id", "id"),
			Name: field(record, "Name", "name"),
			Type: field(record, "AccessType", "Type", "type"),
		}
		if folder.ID == "" {
			log.Printf("skipping folder entry without id: %q", folder.Name)
			continue
		}
		if isNoiseFolder(folder.Name) {
			continue
		}
		result = append(result, folder)
	}
	return result
}

// field returns the first non-empty value among keys, coerced to string.
func field(record map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		value, ok := record[key]
		if !ok || value == nil {
			continue
		}
		if text := strings.TrimSpace(toolbox.AsString(value)); text != "" {
			return text
		}
	}
	return ""
}

var noiseFolders = map[string]bool{
	"automatedprocess": true,
	"system":           true,
	"hidden":           true,
}

// isNoiseFolder reports system folders that are never export targets.
func isNoiseFolder(name string) bool {
	if name == "" || strings.HasPrefix(name, "__") {
		return true
	}
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(name))
	return noiseFolders[normalized]
}
