package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/auditmark/internal/audit"
	"github.com/dshills/auditmark/internal/config"
	"github.com/dshills/auditmark/internal/log"
	"github.com/dshills/auditmark/internal/workspace"
)

const version = "0.3.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitConflict     = 1
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

// Global flags
var (
	flagRoots         []string
	flagSession       string
	flagAuthor        string
	flagStateDir      string
	flagConsolidateBy string
	flagLogLevel      string
	flagRootLabel     string
)

// appContext is what every workspace command needs, built once per
// invocation by setup.
type appContext struct {
	cfg      config.Config
	key      audit.ConsolidationKey
	logger   *log.Logger
	resolver *workspace.Resolver
}

var app appContext

var rootCmd = &cobra.Command{
	Use:               "auditmark",
	Short:             "Track reviewed code regions and audit findings",
	Long:              "auditmark records which line ranges each reviewer has audited, stores findings and notes against them, and reconciles review state across reviewers and workspace roots.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// exitCode is set by command handlers that succeed but still want a
// non-zero status, such as find reporting an overlap.
var exitCode = ExitSuccess

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}
	return exitCode
}

// runtimeError marks failures that are not the caller's fault.
type runtimeError struct{ err error }

func (e *runtimeError) Error() string { return e.err.Error() }
func (e *runtimeError) Unwrap() error { return e.err }

func failed(err error) error {
	if err == nil {
		return nil
	}
	return &runtimeError{err: err}
}

var (
	errAlreadyAudited = errors.New("file is already marked as fully audited")
	errEntryOverlap   = errors.New("an existing entry already covers these lines")
)

func exitCodeFor(err error) int {
	var rt *runtimeError
	switch {
	case errors.Is(err, audit.ErrNoContainingRegion),
		errors.Is(err, errAlreadyAudited),
		errors.Is(err, errEntryOverlap):
		return ExitConflict
	case errors.As(err, &rt):
		return ExitRuntimeError
	default:
		return ExitUsageError
	}
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagAuthor != "" {
		m["author"] = flagAuthor
	}
	if flagStateDir != "" {
		m["stateDir"] = flagStateDir
	}
	if flagConsolidateBy != "" {
		m["consolidateBy"] = flagConsolidateBy
	}
	if flagLogLevel != "" {
		m["log.level"] = flagLogLevel
	}
	if flagSession != "" {
		m["sessionFile"] = flagSession
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	return m
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	key, err := cfg.ConsolidationKey()
	if err != nil {
		return err
	}

	paths, err := rootPaths(cfg)
	if err != nil {
		return failed(err)
	}

	app = appContext{
		cfg:      cfg,
		key:      key,
		logger:   log.NewLogger(cfg.Log.Level, cfg.Log.Format).With("command", cmd.Name()),
		resolver: workspace.NewResolver(paths),
	}
	if flagRootLabel != "" {
		if _, ok := app.resolver.RootByLabel(flagRootLabel); !ok {
			return fmt.Errorf("unknown root label %q (see the roots command)", flagRootLabel)
		}
	}
	app.logger.Debug("workspace ready", "roots", len(paths), "author", cfg.Author, "consolidateBy", key.String())
	return nil
}

// rootPaths returns the absolute workspace roots: --root flags first, then
// the session file, then the working directory.
func rootPaths(cfg config.Config) ([]string, error) {
	if len(flagRoots) > 0 {
		out := make([]string, 0, len(flagRoots))
		for _, r := range flagRoots {
			abs, err := filepath.Abs(r)
			if err != nil {
				return nil, fmt.Errorf("resolving root %s: %w", r, err)
			}
			out = append(out, abs)
		}
		return out, nil
	}
	if cfg.SessionFile != "" {
		s, err := workspace.LoadSession(cfg.SessionFile)
		if err != nil {
			return nil, err
		}
		return s.RootPaths(), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return []string{wd}, nil
}

func skipSetup(*cobra.Command, []string) error { return nil }

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print auditmark version",
	PersistentPreRunE: skipSetup,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "auditmark version %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringSliceVar(&flagRoots, "root", nil, "Workspace root directory (repeatable, default: working directory)")
	pf.StringVar(&flagSession, "session", "", "YAML session file listing workspace roots")
	pf.StringVar(&flagAuthor, "author", "", "Reviewer name (default: current user)")
	pf.StringVar(&flagStateDir, "state-dir", "", "Directory under each root holding .weaudit files")
	pf.StringVar(&flagConsolidateBy, "consolidate-by", "", "Grouping for region consolidation (path-author, path)")
	pf.StringVar(&flagRootLabel, "root-label", "", "Restrict the command to the root with this label")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(consolidateCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(unmarkCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(resolveEntryCmd)
	rootCmd.AddCommand(restoreEntryCmd)
	rootCmd.AddCommand(rootsCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
