// Package gitctx reads repository metadata for a workspace root and builds
// permalinks to reviewed lines.
//
// Metadata comes straight from the repository via go-git, so no git binary is
// needed. [GetRepoMeta] returns the root, HEAD commit, branch and origin
// remote; [Permalink] turns a remote, commit and line range into a browsable
// URL.
package gitctx
