// Package model contains the plain data types shared by the exporter
// components: the authenticated Session, catalog snapshots of reports and
// folders, and the ExportResult produced by a pipeline run.
//
// Values in this package carry no behaviour beyond small helpers; they are
// created at the component boundaries (login, catalog listing, pipeline run)
// and treated as read-only afterwards.
package model
