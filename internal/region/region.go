package region

// LineRegion is a closed, 0-indexed range of lines [StartLine, EndLine].
// Callers keep StartLine <= EndLine; nothing here validates it.
type LineRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

// Len returns the number of lines covered by the region.
func (r LineRegion) Len() int {
	return r.EndLine - r.StartLine + 1
}

// OverlapsOrAdjacent reports whether a and b share a line or touch end to end,
// i.e. whether they can be merged into one region without covering a gap.
func OverlapsOrAdjacent(a, b LineRegion) bool {
	return a.StartLine <= b.EndLine+1 && b.StartLine <= a.EndLine+1
}

// Overlaps reports whether a and b share at least one line. Adjacent regions
// do not overlap.
func Overlaps(a, b LineRegion) bool {
	return a.StartLine <= b.EndLine && b.StartLine <= a.EndLine
}

// Merge returns the smallest region covering both a and b.
//
// Merge does not check its inputs: called on disjoint, non-adjacent regions it
// returns a region that also covers the gap between them. Use TryMerge when the
// inputs have not already been checked with OverlapsOrAdjacent.
func Merge(a, b LineRegion) LineRegion {
	return LineRegion{
		StartLine: min(a.StartLine, b.StartLine),
		EndLine:   max(a.EndLine, b.EndLine),
	}
}

// TryMerge merges a and b only when they overlap or are adjacent. The boolean
// is false, and the region zero, otherwise.
func TryMerge(a, b LineRegion) (LineRegion, bool) {
	if !OverlapsOrAdjacent(a, b) {
		return LineRegion{}, false
	}
	return Merge(a, b), true
}

// Contains reports whether selection lies entirely inside r. Equal regions
// contain each other.
func Contains(selection, r LineRegion) bool {
	return r.StartLine <= selection.StartLine && selection.EndLine <= r.EndLine
}

// SplitOutcome says what SplitOnDeselect did to the existing region.
type SplitOutcome int

const (
	// OutcomeDeleted means the selection covered the whole region; the caller
	// removes it.
	OutcomeDeleted SplitOutcome = iota + 1
	// OutcomeModified means a head or tail of the region was removed.
	OutcomeModified
	// OutcomeSplit means an interior slice was removed; the region now holds
	// the head and SplitResult.NewRegion holds the tail.
	OutcomeSplit
)

func (o SplitOutcome) String() string {
	switch o {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeModified:
		return "modified"
	case OutcomeSplit:
		return "split"
	default:
		return "unknown"
	}
}

// SplitResult reports the effect of SplitOnDeselect.
type SplitResult struct {
	Outcome SplitOutcome
	// NewRegion is set only for OutcomeSplit.
	NewRegion *LineRegion
}

// Deleted reports whether the existing region must be removed.
func (s SplitResult) Deleted() bool { return s.Outcome == OutcomeDeleted }

// Modified reports whether the existing region was shrunk at one end.
func (s SplitResult) Modified() bool { return s.Outcome == OutcomeModified }

// Split reports whether the existing region was split in two.
func (s SplitResult) Split() bool { return s.Outcome == OutcomeSplit }

// SplitOnDeselect removes selection from existing, updating existing in place.
//
// Contains(selection, *existing) must hold; behaviour is undefined otherwise.
// The cases are checked in order: exact match, tail, head, interior.
func SplitOnDeselect(existing *LineRegion, selection LineRegion) SplitResult {
	switch {
	case selection == *existing:
		return SplitResult{Outcome: OutcomeDeleted}
	case selection.EndLine == existing.EndLine:
		existing.EndLine = selection.StartLine - 1
		return SplitResult{Outcome: OutcomeModified}
	case selection.StartLine == existing.StartLine:
		existing.StartLine = selection.EndLine + 1
		return SplitResult{Outcome: OutcomeModified}
	default:
		tail := LineRegion{StartLine: selection.EndLine + 1, EndLine: existing.EndLine}
		existing.EndLine = selection.StartLine - 1
		return SplitResult{Outcome: OutcomeSplit, NewRegion: &tail}
	}
}

// AdjustSelectionEndLine undoes the editor convention of reporting a selection
// that runs to the end of line N as ending at character 0 of line N+1.
func AdjustSelectionEndLine(startLine, endLine, endCharacter int) int {
	if endLine > startLine && endCharacter == 0 {
		return endLine - 1
	}
	return endLine
}

// AdjustForEmptyLastLine drops a trailing empty last line from a selection,
// never moving the end above startLine.
func AdjustForEmptyLastLine(endLine, startLine, documentLineCount int, lastLineIsEmpty bool) int {
	if endLine == documentLineCount-1 && lastLineIsEmpty {
		return max(endLine-1, startLine)
	}
	return endLine
}
