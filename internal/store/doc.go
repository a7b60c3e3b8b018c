// Package store persists review state as .weaudit JSON documents.
//
// Each author's state for a workspace root lives in
// <root>/.vscode/<author>.weaudit. Files are validated against an embedded
// JSON schema on load and written atomically on save. [Store.LoadAll] reads
// every author's file under a root concurrently.
package store
