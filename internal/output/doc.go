// Package output formats review state for display or machine consumption.
//
// Four formats are supported:
//   - text: human-readable terminal output (default)
//   - json: the full structured report
//   - markdown: a shareable write-up with permalinks when the commit is known
//   - sarif: SARIF v2.1.0 for code-scanning dashboards and other CI tools
//
// Build a [Report] with [NewReport], obtain a [Writer] for a format string
// with [GetWriter] and call [Writer.Write]. [WriteReport] handles choosing
// between a file and stdout.
package output
