// Package region implements the line-interval algebra used to track partially
// audited files.
//
// A [LineRegion] is a closed, 0-indexed range of lines. The package answers
// overlap and adjacency questions, merges regions, and removes a deselected
// range from a reviewed region via [SplitOnDeselect], which deletes, shrinks or
// splits the region depending on where the selection falls.
//
// Two helpers normalise editor selections before they reach the algebra:
// [AdjustSelectionEndLine] and [AdjustForEmptyLastLine].
package region
