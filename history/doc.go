// Package history keeps a local sqlite ledger of export runs and their failed reports.
package history
