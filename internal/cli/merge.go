package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/auditmark/internal/audit"
	"github.com/dshills/auditmark/internal/store"
)

var flagOut string

var mergeCmd = &cobra.Command{
	Use:   "merge <file.weaudit> <file.weaudit> [more...]",
	Short: "Merge review state files into one",
	Long: `Merge unions the findings, notes, audited files and reviewed regions of
several state files. Duplicates keep the copy from the earliest file and the
reviewed regions are consolidated. The result goes to --out or stdout.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		states, err := store.LoadFiles(cmd.Context(), args)
		if err != nil {
			return failed(err)
		}

		merged := states[0]
		for _, s := range states[1:] {
			merged = audit.MergeState(merged, s, app.key)
		}

		in := 0
		for _, s := range states {
			in += len(s.TreeEntries)
		}
		app.logger.Info("merged state files",
			"files", len(args),
			"entries_in", in,
			"entries_out", len(merged.TreeEntries),
			"regions", len(merged.PartiallyAuditedFiles))

		if flagOut != "" {
			if err := store.SaveFile(flagOut, merged); err != nil {
				return failed(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d files into %s\n", len(args), flagOut)
			return nil
		}

		data, err := json.MarshalIndent(merged, "", "  ")
		if err != nil {
			return failed(fmt.Errorf("marshaling state: %w", err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var consolidateCmd = &cobra.Command{
	Use:   "consolidate [file.weaudit...]",
	Short: "Coalesce overlapping and adjacent reviewed regions",
	Long: `Consolidate rewrites the reviewed regions of the given state files, or of
the current author's state file in every workspace root, so that no two
regions of the same group overlap or touch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			for _, root := range selectedRoots() {
				paths = append(paths, storeFor(root).PathFor(app.cfg.Author))
			}
		}

		for _, p := range paths {
			s, err := store.LoadFile(p)
			if err != nil {
				if len(args) == 0 && isNotFound(err) {
					app.logger.Debug("no state file", "path", p)
					continue
				}
				return failed(err)
			}
			before := len(s.PartiallyAuditedFiles)
			s.PartiallyAuditedFiles = audit.ConsolidateBy(s.PartiallyAuditedFiles, app.key)
			after := len(s.PartiallyAuditedFiles)
			if after != before {
				if err := store.SaveFile(p, s); err != nil {
					return failed(err)
				}
			}
			app.logger.Debug("consolidated", "path", p, "before", before, "after", after)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d -> %d regions\n", p, before, after)
		}
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
}
