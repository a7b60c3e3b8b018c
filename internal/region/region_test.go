package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func r(start, end int) LineRegion {
	return LineRegion{StartLine: start, EndLine: end}
}

func TestOverlapsOrAdjacent(t *testing.T) {
	tests := []struct {
		name string
		a, b LineRegion
		want bool
	}{
		{"identical", r(1, 5), r(1, 5), true},
		{"overlapping", r(1, 5), r(4, 9), true},
		{"nested", r(1, 10), r(3, 4), true},
		{"adjacent", r(1, 5), r(6, 9), true},
		{"gap of one", r(1, 5), r(7, 9), false},
		{"far apart", r(1, 2), r(100, 200), false},
		{"single lines adjacent", r(3, 3), r(4, 4), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverlapsOrAdjacent(tt.a, tt.b))
			assert.Equal(t, tt.want, OverlapsOrAdjacent(tt.b, tt.a), "must be symmetric")
		})
	}
}

func TestOverlaps_AdjacentIsNotOverlap(t *testing.T) {
	assert.False(t, Overlaps(r(10, 20), r(21, 30)))
	assert.True(t, Overlaps(r(10, 20), r(20, 30)))
	assert.True(t, Overlaps(r(10, 20), r(10, 20)))
}

func TestMerge(t *testing.T) {
	a, b := r(4, 9), r(1, 5)
	assert.Equal(t, r(1, 9), Merge(a, b))
	assert.Equal(t, Merge(a, b), Merge(b, a))
	assert.Equal(t, r(1, 10), Merge(r(1, 10), r(3, 4)))
}

func TestMerge_DisjointCoversGap(t *testing.T) {
	assert.Equal(t, r(1, 20), Merge(r(1, 2), r(19, 20)))
}

func TestTryMerge(t *testing.T) {
	got, ok := TryMerge(r(1, 5), r(6, 8))
	require.True(t, ok)
	assert.Equal(t, r(1, 8), got)

	got, ok = TryMerge(r(1, 5), r(7, 8))
	assert.False(t, ok)
	assert.Equal(t, LineRegion{}, got)
}

func TestContains(t *testing.T) {
	tests := []struct {
		name      string
		selection LineRegion
		region    LineRegion
		want      bool
	}{
		{"equal", r(10, 50), r(10, 50), true},
		{"interior", r(8, 12), r(1, 20), true},
		{"head", r(1, 5), r(1, 10), true},
		{"tail", r(5, 10), r(1, 10), true},
		{"starts before", r(0, 5), r(1, 10), false},
		{"ends after", r(5, 11), r(1, 10), false},
		{"disjoint", r(20, 30), r(1, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.selection, tt.region))
		})
	}
}

func TestSplitOnDeselect_ExactMatchDeletes(t *testing.T) {
	existing := r(10, 50)
	res := SplitOnDeselect(&existing, r(10, 50))
	assert.True(t, res.Deleted())
	assert.False(t, res.Modified())
	assert.False(t, res.Split())
	assert.Nil(t, res.NewRegion)
}

func TestSplitOnDeselect_Tail(t *testing.T) {
	existing := r(1, 10)
	res := SplitOnDeselect(&existing, r(5, 10))
	assert.True(t, res.Modified())
	assert.Equal(t, r(1, 4), existing)
	assert.Nil(t, res.NewRegion)
}

func TestSplitOnDeselect_Head(t *testing.T) {
	existing := r(1, 10)
	res := SplitOnDeselect(&existing, r(1, 5))
	assert.True(t, res.Modified())
	assert.Equal(t, r(6, 10), existing)
}

func TestSplitOnDeselect_Interior(t *testing.T) {
	existing := r(1, 20)
	res := SplitOnDeselect(&existing, r(8, 12))
	require.True(t, res.Split())
	require.NotNil(t, res.NewRegion)
	assert.Equal(t, r(1, 7), existing)
	assert.Equal(t, r(13, 20), *res.NewRegion)
}

func TestSplitOnDeselect_SingleLineInterior(t *testing.T) {
	existing := r(0, 2)
	res := SplitOnDeselect(&existing, r(1, 1))
	require.True(t, res.Split())
	assert.Equal(t, r(0, 0), existing)
	assert.Equal(t, r(2, 2), *res.NewRegion)
}

func TestSplitOutcome_String(t *testing.T) {
	assert.Equal(t, "deleted", OutcomeDeleted.String())
	assert.Equal(t, "modified", OutcomeModified.String())
	assert.Equal(t, "split", OutcomeSplit.String())
	assert.Equal(t, "unknown", SplitOutcome(0).String())
}

func TestAdjustSelectionEndLine(t *testing.T) {
	tests := []struct {
		name                        string
		start, end, endChar, wantEnd int
	}{
		{"multi-line ending at column zero", 3, 8, 0, 7},
		{"multi-line ending mid line", 3, 8, 4, 8},
		{"single line column zero", 3, 3, 0, 3},
		{"single line", 3, 3, 12, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantEnd, AdjustSelectionEndLine(tt.start, tt.end, tt.endChar))
		})
	}
}

func TestAdjustForEmptyLastLine(t *testing.T) {
	tests := []struct {
		name                  string
		end, start, lineCount int
		lastEmpty             bool
		want                  int
	}{
		{"trailing empty line dropped", 9, 2, 10, true, 8},
		{"last line not empty", 9, 2, 10, false, 9},
		{"not the last line", 5, 2, 10, true, 5},
		{"clamped to start", 9, 9, 10, true, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdjustForEmptyLastLine(tt.end, tt.start, tt.lineCount, tt.lastEmpty))
		})
	}
}

func TestLen(t *testing.T) {
	assert.Equal(t, 1, r(4, 4).Len())
	assert.Equal(t, 10, r(1, 10).Len())
}
