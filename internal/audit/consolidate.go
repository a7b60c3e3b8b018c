package audit

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dshills/auditmark/internal/region"
)

// ConsolidationKey selects which partial audits may be merged together.
type ConsolidationKey int

const (
	// KeyPathAuthor merges only regions of the same file and the same author.
	KeyPathAuthor ConsolidationKey = iota
	// KeyPath merges regions of the same file regardless of author. The
	// author of the earliest region in each merged run is kept.
	KeyPath
)

func (k ConsolidationKey) String() string {
	switch k {
	case KeyPathAuthor:
		return "path-author"
	case KeyPath:
		return "path"
	default:
		return "unknown"
	}
}

// ParseConsolidationKey parses the config spelling of a key.
func ParseConsolidationKey(s string) (ConsolidationKey, error) {
	switch s {
	case "", "path-author":
		return KeyPathAuthor, nil
	case "path":
		return KeyPath, nil
	default:
		return 0, fmt.Errorf("unknown consolidation key %q (want path-author or path)", s)
	}
}

// Consolidate merges overlapping and adjacent regions of the same file and
// author. See ConsolidateBy.
func Consolidate(regions []PartiallyAuditedFile) []PartiallyAuditedFile {
	return ConsolidateBy(regions, KeyPathAuthor)
}

// ConsolidateBy groups regions by key, sorts each group by start line and
// merges overlapping or adjacent neighbours in one pass. The input is not
// modified. The result is ordered by path, then author (for KeyPathAuthor),
// then start line, and consolidating it again returns it unchanged.
func ConsolidateBy(regions []PartiallyAuditedFile, key ConsolidationKey) []PartiallyAuditedFile {
	if len(regions) == 0 {
		return nil
	}
	sorted := slices.Clone(regions)
	slices.SortStableFunc(sorted, func(a, b PartiallyAuditedFile) int {
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		if key == KeyPathAuthor {
			if c := cmp.Compare(a.Author, b.Author); c != 0 {
				return c
			}
		}
		if c := cmp.Compare(a.StartLine, b.StartLine); c != 0 {
			return c
		}
		return cmp.Compare(a.EndLine, b.EndLine)
	})

	out := make([]PartiallyAuditedFile, 0, len(sorted))
	out = append(out, sorted[0])
	for _, cur := range sorted[1:] {
		last := &out[len(out)-1]
		if sameGroup(*last, cur, key) {
			if merged, ok := region.TryMerge(last.Region(), cur.Region()); ok {
				last.setRegion(merged)
				continue
			}
		}
		out = append(out, cur)
	}
	return out
}

func sameGroup(a, b PartiallyAuditedFile, key ConsolidationKey) bool {
	if a.Path != b.Path {
		return false
	}
	return key == KeyPath || a.Author == b.Author
}
