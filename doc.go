// Package sfreport exports Salesforce reports to CSV files bundled into a ZIP
// archive, authenticating with a SOAP username/password login instead of a
// registered OAuth application.
//
// End-users typically interact with the exporter via the Service façade:
//
//	srv, err := sfreport.New(sfreport.WithConfig(cfg))
//	_, err = srv.Login(ctx, username, password, token, "login")
//	result, err := srv.ExportAll(ctx, "/tmp/reports.zip")
//
// Sub-packages hold the individual components: auth (login and API version
// discovery), client (retrying HTTP client), catalog (report and folder
// listing), export (single report CSV download) and pipeline (run
// orchestration and packaging).
package sfreport
