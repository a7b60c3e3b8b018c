// Package workspace maps file paths onto the workspace roots of a review
// session.
//
// A session may span several root directories, and roots may be nested (an
// audit root inside a client root). [UniqueLabels] gives every root a short
// label that no other root shares, prepending parent segments only where
// labels collide. [Resolve] attributes a file to its narrowest containing root
// and flags the result as ambiguous when nested roots both match;
// [ResolveAll] returns every containing root. Both memoise lookups in a
// [Cache] that must be replaced when the root set changes, which [Resolver]
// does automatically.
//
// Sessions can be described in a YAML file; see [LoadSession].
package workspace
