// Package catalog lists the reports and report folders of a Salesforce org.
//
// Reports come from the analytics REST collection; folders and folder-scoped
// report listings come from paginated SOQL queries. Loosely shaped JSON payloads
// are resolved once here into model.ReportMetadata and model.FolderMetadata.
package catalog
