// Package pipeline drives an export run: it resolves the reports in scope,
// exports them one at a time into a scratch working directory, packages the
// directory together with a summary into a ZIP archive and always removes the
// working directory afterwards.
//
// Per report failures never abort a run; they become error stub files and
// failure records. Listing, filesystem and archive failures abort the run.
package pipeline
