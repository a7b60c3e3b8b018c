package audit

import (
	"errors"
	"slices"

	"github.com/dshills/auditmark/internal/region"
)

// ErrNoContainingRegion is reported when an unmark selection is not inside a
// single reviewed region.
var ErrNoContainingRegion = errors.New("selection is not inside a reviewed region")

// MergeState combines two snapshots of review state. Every collection is
// unioned with a's copies winning, then the partial audits are consolidated
// with key. Remote and commit metadata come from a unless a leaves them empty.
func MergeState(a, b State, key ConsolidationKey) State {
	merged := State{
		ClientRemote:    firstNonEmpty(a.ClientRemote, b.ClientRemote),
		GitRemote:       firstNonEmpty(a.GitRemote, b.GitRemote),
		GitSha:          firstNonEmpty(a.GitSha, b.GitSha),
		TreeEntries:     MergeEntries(a.TreeEntries, b.TreeEntries),
		AuditedFiles:    MergeAuditedFiles(a.AuditedFiles, b.AuditedFiles),
		ResolvedEntries: MergeEntries(a.ResolvedEntries, b.ResolvedEntries),
	}
	partials := MergePartiallyAuditedFiles(a.PartiallyAuditedFiles, b.PartiallyAuditedFiles)
	merged.PartiallyAuditedFiles = ConsolidateBy(partials, key)
	return merged
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// MarkRegion records p as reviewed and returns the consolidated list. The
// input slice is not modified.
func MarkRegion(partials []PartiallyAuditedFile, p PartiallyAuditedFile, key ConsolidationKey) []PartiallyAuditedFile {
	next := append(slices.Clone(partials), p)
	return ConsolidateBy(next, key)
}

// UnmarkRegion removes selection from the reviewed region of path by author
// that contains it. The region is shrunk, split or dropped as
// region.SplitOnDeselect decides. The returned bool is false, and partials
// returned unchanged, when no single region contains the selection.
func UnmarkRegion(partials []PartiallyAuditedFile, path, author string, selection region.LineRegion) ([]PartiallyAuditedFile, region.SplitResult, bool) {
	idx := slices.IndexFunc(partials, func(p PartiallyAuditedFile) bool {
		return p.Path == path && p.Author == author && region.Contains(selection, p.Region())
	})
	if idx < 0 {
		return partials, region.SplitResult{}, false
	}

	next := slices.Clone(partials)
	existing := next[idx].Region()
	res := region.SplitOnDeselect(&existing, selection)
	switch res.Outcome {
	case region.OutcomeDeleted:
		next = slices.Delete(next, idx, idx+1)
	case region.OutcomeModified:
		next[idx].setRegion(existing)
	case region.OutcomeSplit:
		next[idx].setRegion(existing)
		tail := PartiallyAuditedFile{Path: path, Author: author}
		tail.setRegion(*res.NewRegion)
		next = slices.Insert(next, idx+1, tail)
	}
	return next, res, true
}

// IsAudited reports whether author has marked path as fully reviewed.
func IsAudited(files []AuditedFile, path, author string) bool {
	return slices.ContainsFunc(files, func(f AuditedFile) bool {
		return AuditedFileEquals(f, AuditedFile{Path: path, Author: author})
	})
}

// MarkWholeFile toggles the whole-file reviewed marker for path by author on
// s. Marking drops that author's partial regions for the file. It returns
// true when the file ends up audited.
func MarkWholeFile(s *State, path, author string) bool {
	target := AuditedFile{Path: path, Author: author}
	if idx := slices.IndexFunc(s.AuditedFiles, func(f AuditedFile) bool { return AuditedFileEquals(f, target) }); idx >= 0 {
		s.AuditedFiles = slices.Delete(slices.Clone(s.AuditedFiles), idx, idx+1)
		return false
	}
	s.AuditedFiles = append(slices.Clone(s.AuditedFiles), target)
	s.PartiallyAuditedFiles = slices.DeleteFunc(slices.Clone(s.PartiallyAuditedFiles), func(p PartiallyAuditedFile) bool {
		return p.Path == path && p.Author == author
	})
	return true
}

// ResolveEntry moves the entry at idx from the tree to the resolved list.
// Ownership moves with it: the entry is no longer reachable from TreeEntries.
func ResolveEntry(s *State, idx int) bool {
	if idx < 0 || idx >= len(s.TreeEntries) {
		return false
	}
	e := s.TreeEntries[idx]
	s.TreeEntries = slices.Delete(slices.Clone(s.TreeEntries), idx, idx+1)
	s.ResolvedEntries = append(slices.Clone(s.ResolvedEntries), e)
	return true
}

// RestoreEntry moves the resolved entry at idx back to the tree.
func RestoreEntry(s *State, idx int) bool {
	if idx < 0 || idx >= len(s.ResolvedEntries) {
		return false
	}
	e := s.ResolvedEntries[idx]
	s.ResolvedEntries = slices.Delete(slices.Clone(s.ResolvedEntries), idx, idx+1)
	s.TreeEntries = append(slices.Clone(s.TreeEntries), e)
	return true
}
