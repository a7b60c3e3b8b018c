// Package audit holds the review-state model and the operations that keep it
// consistent.
//
// It defines findings and notes ([Entry]), whole-file and partial audit
// markers, and the per-author [State] persisted in .weaudit files.
//
// The merge operators ([MergeEntries], [MergeAuditedFiles],
// [MergePartiallyAuditedFiles]) union two independently produced snapshots,
// dropping structural duplicates and always keeping the first snapshot's copy.
// [ConsolidateBy] then folds overlapping or adjacent partial regions together;
// the grouping key is explicit so callers choose between per-author and
// per-file consolidation. [MergeState] runs both steps over a whole snapshot.
//
// [FindIntersecting] is consulted before a new entry is created so an
// annotation is not silently duplicated over an existing one.
package audit
