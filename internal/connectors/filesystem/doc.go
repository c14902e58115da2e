// Package filesystem reads and watches Markdown vaults on local disk.
//
// Reader expands files and directories into .md files for ingestion.
// Watcher reports debounced batches of changed .md files so a codebook
// can be re-derived while notes are being edited.
package filesystem
