package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/auditmark/internal/audit"
)

var flagEntryType string

var findCmd = &cobra.Command{
	Use:   "find <file> <start> [end]",
	Short: "Find entries whose locations overlap a line range",
	Long: `Find looks through every reviewer's state in the file's workspace root for
the first finding (or note, with --type note) overlapping lines start..end.
Ranges that only touch do not count. Exits 1 when something overlaps.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		et, ok := audit.ParseEntryType(flagEntryType)
		if !ok {
			return fmt.Errorf("invalid --type %q (want finding or note)", flagEntryType)
		}
		la, err := parseLineArgs(args)
		if err != nil {
			return err
		}
		m, err := locate(la.File)
		if err != nil {
			return err
		}

		states, err := storeFor(m.Root).LoadAll(cmd.Context())
		if err != nil {
			return failed(err)
		}
		authors := sortedAuthors(states)

		r := la.Region()
		target := audit.Location{Path: m.RelativePath, StartLine: r.StartLine, EndLine: r.EndLine, RootPath: m.Root.Path}
		legacy := target
		legacy.RootPath = ""

		found := 0
		for _, author := range authors {
			entries := states[author].TreeEntries
			idx := audit.FindIntersecting(entries, target, et)
			if idx < 0 {
				idx = audit.FindIntersecting(entries, legacy, et)
			}
			if idx < 0 {
				continue
			}
			found++
			e := entries[idx]
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", author, et, e.Label)
		}

		app.logger.Debug("searched entries", "path", m.RelativePath, "authors", len(authors), "found", found)
		if found > 0 {
			exitCode = ExitConflict
		}
		return nil
	},
}

func init() {
	findCmd.Flags().StringVar(&flagEntryType, "type", "finding", "Entry type to search (finding, note)")
}
