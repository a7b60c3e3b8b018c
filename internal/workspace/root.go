package workspace

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Root is one workspace root directory with its display label.
type Root struct {
	Path  string `json:"rootPath" yaml:"path"`
	Label string `json:"rootLabel" yaml:"label,omitempty"`
}

// IsInRoot reports whether filePath lies under rootPath and returns the path
// relative to the root. A file equal to the root yields ("", true).
func IsInRoot(rootPath, filePath string) (string, bool) {
	rel, err := filepath.Rel(rootPath, filePath)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", false
	}
	if rel == "." {
		return "", true
	}
	return rel, true
}

// UniqueLabels assigns each root path a label that no other root in the set
// shares. A label starts as the final path segment; roots whose labels
// collide get the next parent segment prepended, one level at a time, until
// the collision clears. Only colliding roots are advanced.
//
// The result is in input order and depends only on the input, so repeated
// calls with the same paths yield the same labels.
func UniqueLabels(rootPaths []string) []Root {
	roots := make([]Root, len(rootPaths))
	// working holds the directory whose base is the next segment to prepend.
	working := make([]string, len(rootPaths))
	for i, p := range rootPaths {
		clean := filepath.Clean(p)
		roots[i] = Root{Path: p, Label: baseLabel(clean)}
		working[i] = filepath.Dir(clean)
	}

	queue := collisions(roots)
	for len(queue) > 0 {
		group := queue[0]
		queue = queue[1:]

		advanced := false
		for _, i := range group {
			parent := working[i]
			if isFilesystemRoot(parent) {
				continue
			}
			roots[i].Label = filepath.Base(parent) + string(filepath.Separator) + roots[i].Label
			working[i] = filepath.Dir(parent)
			advanced = true
		}
		if !advanced {
			// Identical paths: nothing left to prepend.
			for n, i := range group[1:] {
				roots[i].Label = fmt.Sprintf("%s (%d)", roots[i].Label, n+2)
			}
		}
		if len(queue) == 0 {
			queue = collisions(roots)
		}
	}
	return roots
}

// collisions returns the index groups that share a label, in order of first
// appearance.
func collisions(roots []Root) [][]int {
	byLabel := make(map[string][]int, len(roots))
	var order []string
	for i, r := range roots {
		if _, seen := byLabel[r.Label]; !seen {
			order = append(order, r.Label)
		}
		byLabel[r.Label] = append(byLabel[r.Label], i)
	}
	var groups [][]int
	for _, label := range order {
		if idx := byLabel[label]; len(idx) > 1 {
			groups = append(groups, idx)
		}
	}
	return groups
}

func baseLabel(clean string) string {
	if isFilesystemRoot(clean) {
		return clean
	}
	return filepath.Base(clean)
}

func isFilesystemRoot(p string) bool {
	return filepath.Dir(p) == p
}
