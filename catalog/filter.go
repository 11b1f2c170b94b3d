package catalog

import "github.com/viant/sfreport/model"

// InFolder keeps reports whose folder id equals folderID, preserving order.
func InFolder(reports []*model.ReportMetadata, folderID string) []*model.ReportMetadata {
	var result = make([]*model.ReportMetadata, 0, len(reports))
	for _, report := range reports {
		if report.FolderID == folderID {
			result = append(result, report)
		}
	}
	return result
}

// Select keeps reports whose id is in ids, preserving catalog order. Unknown ids are ignored.
func Select(reports []*model.ReportMetadata, ids []string) []*model.ReportMetadata {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var result = make([]*model.ReportMetadata, 0, len(ids))
	for _, report := range reports {
		if wanted[report.ID] {
			result = append(result, report)
		}
	}
	return result
}
