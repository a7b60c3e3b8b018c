package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dshills/auditmark/internal/audit"
	"github.com/dshills/auditmark/internal/gitctx"
	"github.com/dshills/auditmark/internal/store"
	"github.com/dshills/auditmark/internal/workspace"
)

// locate resolves file to the root that owns it. Paths inside nested roots
// go to the narrowest root unless --root-label picks one of the enclosing
// roots.
func locate(file string) (workspace.Match, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return workspace.Match{}, failed(fmt.Errorf("resolving %s: %w", file, err))
	}

	if flagRootLabel != "" {
		for _, m := range app.resolver.ResolveAll(abs) {
			if m.Root.Label == flagRootLabel {
				m.RelativePath = filepath.ToSlash(m.RelativePath)
				return m, nil
			}
		}
		return workspace.Match{}, failed(fmt.Errorf("%s is not inside root %q", file, flagRootLabel))
	}

	res := app.resolver.Resolve(abs)
	if !res.Found {
		return workspace.Match{}, failed(fmt.Errorf("%s is not inside any workspace root", file))
	}
	if res.Ambiguous {
		app.logger.Warn("file is inside nested roots, using the narrowest", "file", file, "root", res.Root.Label)
	}
	m := res.Match
	m.RelativePath = filepath.ToSlash(m.RelativePath)
	return m, nil
}

// selectedRoots is every root, or only the one named by --root-label.
func selectedRoots() []workspace.Root {
	if flagRootLabel != "" {
		if r, ok := app.resolver.RootByLabel(flagRootLabel); ok {
			return []workspace.Root{r}
		}
	}
	return app.resolver.Roots()
}

func storeFor(root workspace.Root) *store.Store {
	return store.New(root.Path, app.cfg.StateDir)
}

// loadState returns author's state under st. A missing file yields an empty
// state stamped with the root's git remote and HEAD when available.
func loadState(st *store.Store, author string) (audit.State, error) {
	s, err := st.Load(author)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return audit.State{}, failed(err)
	}

	var fresh audit.State
	meta, err := gitctx.GetRepoMeta(st.Root())
	if err != nil {
		app.logger.Debug("no git metadata for new state", "root", st.Root(), "error", err)
		return fresh, nil
	}
	fresh.GitRemote = meta.Remote
	fresh.GitSha = meta.Head
	return fresh, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func saveState(st *store.Store, author string, s audit.State) error {
	if err := st.Save(author, s); err != nil {
		return failed(err)
	}
	app.logger.Debug("saved state", "path", st.PathFor(author))
	return nil
}

func sortedAuthors(states map[string]audit.State) []string {
	authors := make([]string, 0, len(states))
	for a := range states {
		authors = append(authors, a)
	}
	sort.Strings(authors)
	return authors
}

// foldStates merges states in author order.
func foldStates(states map[string]audit.State, key audit.ConsolidationKey) (audit.State, []string) {
	authors := sortedAuthors(states)
	var merged audit.State
	for i, a := range authors {
		if i == 0 {
			merged = audit.MergeState(states[a], audit.State{}, key)
			continue
		}
		merged = audit.MergeState(merged, states[a], key)
	}
	return merged, authors
}
