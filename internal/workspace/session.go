package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Session describes a multi-root review session on disk.
//
//	name: client-audit
//	roots:
//	  - path: ../client
//	  - path: ../client/contracts
type Session struct {
	Name  string `yaml:"name,omitempty"`
	Roots []Root `yaml:"roots"`
}

// LoadSession reads a YAML session file. Relative root paths are taken
// relative to the file's directory. Labels in the file are ignored; call
// RootPaths and label them with UniqueLabels.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("reading session file: %w", err)
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parsing session file: %w", err)
	}
	if len(s.Roots) == 0 {
		return Session{}, fmt.Errorf("session file %s lists no roots", path)
	}
	base := filepath.Dir(path)
	for i := range s.Roots {
		p := s.Roots[i].Path
		if p == "" {
			return Session{}, fmt.Errorf("session file %s: root %d has no path", path, i)
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return Session{}, fmt.Errorf("resolving root %q: %w", s.Roots[i].Path, err)
		}
		s.Roots[i].Path = abs
		s.Roots[i].Label = ""
	}
	return s, nil
}

// RootPaths returns the session's root paths in file order.
func (s Session) RootPaths() []string {
	paths := make([]string, len(s.Roots))
	for i, r := range s.Roots {
		paths[i] = r.Path
	}
	return paths
}

// SaveSession writes s as YAML.
func SaveSession(path string, s Session) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
