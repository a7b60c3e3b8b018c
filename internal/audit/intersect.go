package audit

import "github.com/dshills/auditmark/internal/region"

// FindIntersecting returns the index of the first entry of entryType with a
// location in the same file and root as target whose lines overlap target's,
// or -1. Ranges that only touch end to end do not overlap.
func FindIntersecting(entries []Entry, target Location, entryType EntryType) int {
	for i, e := range entries {
		if e.EntryType != entryType {
			continue
		}
		for _, loc := range e.Locations {
			if loc.Path != target.Path || loc.RootPath != target.RootPath {
				continue
			}
			if region.Overlaps(loc.Region(), target.Region()) {
				return i
			}
		}
	}
	return -1
}
