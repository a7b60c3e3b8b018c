package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/auditmark/internal/audit"
	"github.com/dshills/auditmark/internal/store"
	"github.com/dshills/auditmark/internal/workspace"
)

var (
	flagLabel          string
	flagSeverity       string
	flagDifficulty     string
	flagFindingType    string
	flagDescription    string
	flagExploit        string
	flagRecommendation string
)

// entryInput holds the details typed for a new entry.
type entryInput struct {
	Label      string `validate:"required"`
	Severity   string `validate:"omitempty,oneof=High Medium Low Informational Undetermined"`
	Difficulty string `validate:"omitempty,oneof=High Medium Low N/A Undetermined"`
	Type       string `validate:"findingtype"`
}

var addCmd = &cobra.Command{
	Use:   "add <finding|note> <file> <start> [end] --label <label>",
	Short: "Record a finding or note on a line range",
	Long: `Add creates a finding or note owned by the current author covering lines
start..end (1-based, inclusive) of file. It refuses, exiting 1, when any
reviewer already has an entry of the same type overlapping those lines.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		et, ok := audit.ParseEntryType(args[0])
		if !ok {
			return fmt.Errorf("invalid entry type %q (want finding or note)", args[0])
		}
		in := entryInput{
			Label:      flagLabel,
			Severity:   flagSeverity,
			Difficulty: flagDifficulty,
			Type:       flagFindingType,
		}
		if err := validate.Struct(in); err != nil {
			return describe(err)
		}
		la, err := parseLineArgs(args[1:])
		if err != nil {
			return err
		}
		m, err := locate(la.File)
		if err != nil {
			return err
		}

		st := storeFor(m.Root)
		states, err := st.LoadAll(cmd.Context())
		if err != nil {
			return failed(err)
		}

		r := la.Region()
		target := audit.Location{Path: m.RelativePath, StartLine: r.StartLine, EndLine: r.EndLine, RootPath: m.Root.Path}
		legacy := target
		legacy.RootPath = ""
		for _, author := range sortedAuthors(states) {
			entries := states[author].TreeEntries
			idx := audit.FindIntersecting(entries, target, et)
			if idx < 0 {
				idx = audit.FindIntersecting(entries, legacy, et)
			}
			if idx >= 0 {
				return fmt.Errorf("%s:%d-%d: %w (%s %q by %s)",
					m.RelativePath, la.StartLine, la.EndLine, errEntryOverlap, et, entries[idx].Label, author)
			}
		}

		author := app.cfg.Author
		state, ok := states[author]
		if !ok {
			if state, err = loadState(st, author); err != nil {
				return err
			}
		}
		state.TreeEntries = append(state.TreeEntries, audit.Entry{
			Label:     flagLabel,
			EntryType: et,
			Author:    author,
			Details: audit.Details{
				Severity:       audit.Severity(flagSeverity),
				Difficulty:     audit.Difficulty(flagDifficulty),
				Type:           audit.FindingType(flagFindingType),
				Description:    flagDescription,
				Exploit:        flagExploit,
				Recommendation: flagRecommendation,
			},
			Locations: []audit.Location{target},
		})
		if err := saveState(st, author, state); err != nil {
			return err
		}
		app.logger.Info("added entry", "type", et, "label", flagLabel, "path", m.RelativePath, "root", m.Root.Label)
		fmt.Fprintf(cmd.OutOrStdout(), "added %s %q at %s:%d-%d\n", et, flagLabel, m.RelativePath, la.StartLine, la.EndLine)
		return nil
	},
}

// entryRef locates one entry of the current author by label.
type entryRef struct {
	root  workspace.Root
	store *store.Store
	state audit.State
	idx   int
}

// findByLabel searches the current author's tree entries, or resolved entries
// when resolved is set, across the selected roots. The label must match
// exactly one entry.
func findByLabel(label string, resolved bool) (entryRef, error) {
	author := app.cfg.Author
	var refs []entryRef
	for _, root := range selectedRoots() {
		st := storeFor(root)
		s, err := st.Load(author)
		if isNotFound(err) {
			continue
		}
		if err != nil {
			return entryRef{}, failed(err)
		}
		entries := s.TreeEntries
		if resolved {
			entries = s.ResolvedEntries
		}
		for i, e := range entries {
			if e.Label == label {
				refs = append(refs, entryRef{root: root, store: st, state: s, idx: i})
			}
		}
	}

	kind := "open"
	if resolved {
		kind = "resolved"
	}
	switch len(refs) {
	case 0:
		return entryRef{}, failed(fmt.Errorf("no %s entry labelled %q for %s", kind, label, author))
	case 1:
		return refs[0], nil
	default:
		return entryRef{}, fmt.Errorf("%d %s entries are labelled %q; narrow with --root-label", len(refs), kind, label)
	}
}

var resolveEntryCmd = &cobra.Command{
	Use:   "resolve-entry <label>",
	Short: "Move one of your entries to the resolved list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := findByLabel(args[0], false)
		if err != nil {
			return err
		}
		audit.ResolveEntry(&ref.state, ref.idx)
		if err := saveState(ref.store, app.cfg.Author, ref.state); err != nil {
			return err
		}
		app.logger.Info("resolved entry", "label", args[0], "root", ref.root.Label)
		fmt.Fprintf(cmd.OutOrStdout(), "resolved %q in %s\n", args[0], ref.root.Label)
		return nil
	},
}

var restoreEntryCmd = &cobra.Command{
	Use:   "restore-entry <label>",
	Short: "Move one of your resolved entries back to the open list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := findByLabel(args[0], true)
		if err != nil {
			return err
		}
		audit.RestoreEntry(&ref.state, ref.idx)
		if err := saveState(ref.store, app.cfg.Author, ref.state); err != nil {
			return err
		}
		app.logger.Info("restored entry", "label", args[0], "root", ref.root.Label)
		fmt.Fprintf(cmd.OutOrStdout(), "restored %q in %s\n", args[0], ref.root.Label)
		return nil
	},
}

func init() {
	f := addCmd.Flags()
	f.StringVar(&flagLabel, "label", "", "Entry title (required)")
	f.StringVar(&flagSeverity, "severity", "", "High, Medium, Low, Informational or Undetermined")
	f.StringVar(&flagDifficulty, "difficulty", "", "High, Medium, Low, N/A or Undetermined")
	f.StringVar(&flagFindingType, "finding-type", "", "Finding category, e.g. \"Data Validation\"")
	f.StringVar(&flagDescription, "description", "", "Description of the issue")
	f.StringVar(&flagExploit, "exploit", "", "Exploit scenario")
	f.StringVar(&flagRecommendation, "recommendation", "", "Recommended fix")
}
