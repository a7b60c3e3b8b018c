package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/auditmark/internal/audit"
)

// Extension of review-state files.
const Extension = ".weaudit"

// DefaultStateDir is the directory, relative to a workspace root, holding
// review-state files.
const DefaultStateDir = ".vscode"

var (
	// ErrNotFound is returned when a state file does not exist.
	ErrNotFound = errors.New("state file not found")
	// ErrInvalidState is returned when a state file fails schema validation.
	ErrInvalidState = errors.New("invalid state file")
)

// Store reads and writes the review-state files of one workspace root.
type Store struct {
	root     string
	stateDir string
}

// New returns a store for root. An empty stateDir means DefaultStateDir.
func New(root, stateDir string) *Store {
	if stateDir == "" {
		stateDir = DefaultStateDir
	}
	return &Store{root: root, stateDir: stateDir}
}

// Root returns the workspace root the store serves.
func (s *Store) Root() string { return s.root }

// PathFor returns the state file path of author.
func (s *Store) PathFor(author string) string {
	return filepath.Join(s.root, s.stateDir, author+Extension)
}

// Load reads the state of author.
func (s *Store) Load(author string) (audit.State, error) {
	return LoadFile(s.PathFor(author))
}

// Save writes the state of author.
func (s *Store) Save(author string, st audit.State) error {
	return SaveFile(s.PathFor(author), st)
}

// Authors lists the authors with a state file under the root, sorted.
func (s *Store) Authors() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, s.stateDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading state directory: %w", err)
	}
	var authors []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Extension {
			continue
		}
		authors = append(authors, strings.TrimSuffix(e.Name(), Extension))
	}
	sort.Strings(authors)
	return authors, nil
}

// LoadAll reads every author's state under the root concurrently. The map
// is keyed by author.
func (s *Store) LoadAll(ctx context.Context) (map[string]audit.State, error) {
	authors, err := s.Authors()
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(authors))
	for i, a := range authors {
		paths[i] = s.PathFor(a)
	}
	states, err := LoadFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	out := make(map[string]audit.State, len(authors))
	for i, a := range authors {
		out[a] = states[i]
	}
	return out, nil
}

// LoadFile reads and validates one state file.
func LoadFile(path string) (audit.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return audit.State{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return audit.State{}, fmt.Errorf("reading state file: %w", err)
	}
	if err := Validate(data); err != nil {
		return audit.State{}, fmt.Errorf("%s: %w", path, err)
	}
	var st audit.State
	if err := json.Unmarshal(data, &st); err != nil {
		return audit.State{}, fmt.Errorf("parsing state file %s: %w", path, err)
	}
	return st, nil
}

// LoadFiles reads several state files concurrently, returning them in the
// order of paths. The first failure cancels the rest.
func LoadFiles(ctx context.Context, paths []string) ([]audit.State, error) {
	states := make([]audit.State, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, err := LoadFile(p)
			if err != nil {
				return err
			}
			states[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}

// SaveFile writes st as indented JSON, creating parent directories. Nil
// collections are written as empty arrays.
func SaveFile(path string, st audit.State) error {
	if st.TreeEntries == nil {
		st.TreeEntries = []audit.Entry{}
	}
	if st.AuditedFiles == nil {
		st.AuditedFiles = []audit.AuditedFile{}
	}
	if st.PartiallyAuditedFiles == nil {
		st.PartiallyAuditedFiles = []audit.PartiallyAuditedFile{}
	}
	if st.ResolvedEntries == nil {
		st.ResolvedEntries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
