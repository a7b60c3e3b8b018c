package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/auditmark/internal/workspace"
)

var (
	flagAll         bool
	flagSaveSession string
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List workspace roots with their display labels",
	Long: `Roots prints the label and path of each workspace root. With --save the
roots are also written to a session file usable with --session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		roots := selectedRoots()
		for _, r := range roots {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Label, r.Path)
		}
		if flagSaveSession == "" {
			return nil
		}

		session := workspace.Session{
			Name:  strings.TrimSuffix(filepath.Base(flagSaveSession), filepath.Ext(flagSaveSession)),
			Roots: make([]workspace.Root, len(roots)),
		}
		for i, r := range roots {
			session.Roots[i] = workspace.Root{Path: r.Path}
		}
		if err := workspace.SaveSession(flagSaveSession, session); err != nil {
			return failed(err)
		}
		app.logger.Info("saved session", "path", flagSaveSession, "roots", len(roots))
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>...",
	Short: "Show which workspace root owns each file",
	Long: `Resolve prints the owning root label and the root-relative path of each
file. Nested roots resolve to the narrowest one and are flagged as ambiguous;
--all lists every enclosing root instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		missing := 0
		for _, file := range args {
			abs, err := filepath.Abs(file)
			if err != nil {
				return failed(fmt.Errorf("resolving %s: %w", file, err))
			}

			if flagAll {
				matches := app.resolver.ResolveAll(abs)
				if len(matches) == 0 {
					missing++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: not in any workspace root\n", file)
				}
				for _, m := range matches {
					fmt.Fprintf(out, "%s\t%s\t%s\n", file, m.Root.Label, filepath.ToSlash(m.RelativePath))
				}
				continue
			}

			res := app.resolver.Resolve(abs)
			if !res.Found {
				missing++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: not in any workspace root\n", file)
				continue
			}
			line := fmt.Sprintf("%s\t%s\t%s", file, res.Root.Label, filepath.ToSlash(res.RelativePath))
			if res.Ambiguous {
				line += "\t(ambiguous)"
			}
			fmt.Fprintln(out, line)
		}

		app.logger.Debug("resolved files", "files", len(args), "missing", missing, "memoised", app.resolver.CacheLen())
		if missing > 0 {
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func init() {
	rootsCmd.Flags().StringVar(&flagSaveSession, "save", "", "Write the roots to this session file")
	resolveCmd.Flags().BoolVar(&flagAll, "all", false, "List every enclosing root")
}
