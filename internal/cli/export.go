package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/auditmark/internal/audit"
	"github.com/dshills/auditmark/internal/output"
	"github.com/dshills/auditmark/internal/redact"
)

var (
	flagFormat       string
	flagNoRedact     bool
	flagExportAuthor string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render findings and notes of every workspace root",
	Long: `Export merges every reviewer's state in each workspace root and renders
the result as text, json, markdown or sarif. Secrets in write-ups are
redacted unless --no-redact is given or redaction is disabled in config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		redacting := app.cfg.Privacy.RedactSecrets && !flagNoRedact
		if !redacting {
			fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: secret redaction is disabled")
		}

		var sections []output.Section
		for _, root := range selectedRoots() {
			states, err := storeFor(root).LoadAll(cmd.Context())
			if err != nil {
				return failed(err)
			}
			if flagExportAuthor != "" {
				s, ok := states[flagExportAuthor]
				states = map[string]audit.State{}
				if ok {
					states[flagExportAuthor] = s
				}
			}
			merged, authors := foldStates(states, app.key)
			if redacting {
				merged = redact.State(merged)
			}
			sections = append(sections, output.Section{Root: root, Authors: authors, State: merged})
			app.logger.Debug("collected root", "root", root.Label, "authors", len(authors), "entries", len(merged.TreeEntries))
		}

		report := output.NewReport(version, sections...)
		if err := output.WriteReport(report, app.cfg.Format, flagOut); err != nil {
			return failed(err)
		}
		app.logger.Info("exported report",
			"format", app.cfg.Format,
			"roots", len(sections),
			"findings", report.Summary.Findings,
			"notes", report.Summary.Notes)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, sarif)")
	exportCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	exportCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	exportCmd.Flags().StringVar(&flagExportAuthor, "only", "", "Export a single reviewer's state")
}
