package audit

// EntryEquals reports whether a and b describe the same annotation: same type,
// author and label, and the same ordered locations compared by path and line
// range. Details and location labels/descriptions are ignored.
func EntryEquals(a, b Entry) bool {
	if a.EntryType != b.EntryType || a.Author != b.Author || a.Label != b.Label {
		return false
	}
	if len(a.Locations) != len(b.Locations) {
		return false
	}
	for i := range a.Locations {
		la, lb := a.Locations[i], b.Locations[i]
		if la.Path != lb.Path || la.StartLine != lb.StartLine || la.EndLine != lb.EndLine {
			return false
		}
	}
	return true
}

// AuditedFileEquals compares path and author.
func AuditedFileEquals(a, b AuditedFile) bool {
	return a.Path == b.Path && a.Author == b.Author
}

// PartiallyAuditedEquals is an exact comparison. Overlapping but different
// ranges are not equal; use Consolidate to fold those together.
func PartiallyAuditedEquals(a, b PartiallyAuditedFile) bool {
	return a.Path == b.Path && a.Author == b.Author &&
		a.StartLine == b.StartLine && a.EndLine == b.EndLine
}

// MergeEntries returns a followed by every element of b with no structural
// equal already in the result. When both sides hold the same entry, the copy
// from a is kept.
func MergeEntries(a, b []Entry) []Entry {
	return mergeUnique(a, b, EntryEquals, Entry.Clone)
}

// MergeAuditedFiles unions two audited-file lists, keeping a's copies.
func MergeAuditedFiles(a, b []AuditedFile) []AuditedFile {
	return mergeUnique(a, b, AuditedFileEquals, nil)
}

// MergePartiallyAuditedFiles unions two partial-audit lists by exact match,
// keeping a's copies.
func MergePartiallyAuditedFiles(a, b []PartiallyAuditedFile) []PartiallyAuditedFile {
	return mergeUnique(a, b, PartiallyAuditedEquals, nil)
}

// mergeUnique returns a fresh slice. clone, when set, copies elements that
// carry slices so the result shares no backing arrays with a or b.
func mergeUnique[T any](a, b []T, eq func(x, y T) bool, clone func(T) T) []T {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	out := make([]T, 0, len(a)+len(b))
	for _, v := range a {
		out = append(out, clone(v))
	}
	for _, candidate := range b {
		dup := false
		for _, existing := range out {
			if eq(existing, candidate) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, clone(candidate))
		}
	}
	return out
}
