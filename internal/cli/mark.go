package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/auditmark/internal/audit"
)

var flagWhole bool

func markArgs(cmd *cobra.Command, args []string) error {
	if flagWhole {
		return cobra.ExactArgs(1)(cmd, args)
	}
	return cobra.RangeArgs(2, 3)(cmd, args)
}

var markCmd = &cobra.Command{
	Use:   "mark <file> <start> [end] | mark --whole <file>",
	Short: "Mark lines of a file, or the whole file, as reviewed",
	Long: `Mark records lines start..end (1-based, inclusive) of file as reviewed by
the current author. The new region is merged with any overlapping or adjacent
region. With --whole the file's fully-reviewed marker is toggled instead.`,
	Args: markArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := locate(args[0])
		if err != nil {
			return err
		}
		author := app.cfg.Author
		st := storeFor(m.Root)
		state, err := loadState(st, author)
		if err != nil {
			return err
		}

		if flagWhole {
			audited := audit.MarkWholeFile(&state, m.RelativePath, author)
			if err := saveState(st, author, state); err != nil {
				return err
			}
			verb := "unmarked"
			if audited {
				verb = "marked"
			}
			app.logger.Info("toggled audited file", "path", m.RelativePath, "root", m.Root.Label, "audited", audited)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s as audited\n", verb, m.RelativePath)
			return nil
		}

		la, err := parseLineArgs(args)
		if err != nil {
			return err
		}
		if audit.IsAudited(state.AuditedFiles, m.RelativePath, author) {
			return fmt.Errorf("%s: %w", m.RelativePath, errAlreadyAudited)
		}

		r := la.Region()
		before := len(state.PartiallyAuditedFiles)
		state.PartiallyAuditedFiles = audit.MarkRegion(state.PartiallyAuditedFiles, audit.PartiallyAuditedFile{
			Path:      m.RelativePath,
			Author:    author,
			StartLine: r.StartLine,
			EndLine:   r.EndLine,
		}, app.key)
		if err := saveState(st, author, state); err != nil {
			return err
		}
		app.logger.Debug("marked region",
			"path", m.RelativePath,
			"root", m.Root.Label,
			"regions_before", before,
			"regions_after", len(state.PartiallyAuditedFiles))
		fmt.Fprintf(cmd.OutOrStdout(), "marked %s:%d-%d\n", m.RelativePath, la.StartLine, la.EndLine)
		return nil
	},
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark <file> <start> [end] | unmark --whole <file>",
	Short: "Remove lines of a file, or the whole file, from the reviewed set",
	Long: `Unmark removes lines start..end (1-based, inclusive) from the reviewed
region that contains them. The region shrinks, splits in two or disappears.
The selection must lie inside a single reviewed region.`,
	Args: markArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := locate(args[0])
		if err != nil {
			return err
		}
		author := app.cfg.Author
		st := storeFor(m.Root)
		state, err := loadState(st, author)
		if err != nil {
			return err
		}

		if flagWhole {
			if !audit.IsAudited(state.AuditedFiles, m.RelativePath, author) {
				return fmt.Errorf("%s is not marked as audited", m.RelativePath)
			}
			audit.MarkWholeFile(&state, m.RelativePath, author)
			if err := saveState(st, author, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unmarked %s as audited\n", m.RelativePath)
			return nil
		}

		la, err := parseLineArgs(args)
		if err != nil {
			return err
		}
		partials, res, ok := audit.UnmarkRegion(state.PartiallyAuditedFiles, m.RelativePath, author, la.Region())
		if !ok {
			return fmt.Errorf("%s:%d-%d: %w", m.RelativePath, la.StartLine, la.EndLine, audit.ErrNoContainingRegion)
		}
		state.PartiallyAuditedFiles = partials
		if err := saveState(st, author, state); err != nil {
			return err
		}
		app.logger.Debug("unmarked region", "path", m.RelativePath, "outcome", res.Outcome.String())
		fmt.Fprintf(cmd.OutOrStdout(), "unmarked %s:%d-%d (%s)\n", m.RelativePath, la.StartLine, la.EndLine, res.Outcome)
		return nil
	},
}

func init() {
	markCmd.Flags().BoolVar(&flagWhole, "whole", false, "Toggle the whole-file reviewed marker")
	unmarkCmd.Flags().BoolVar(&flagWhole, "whole", false, "Clear the whole-file reviewed marker")
}
