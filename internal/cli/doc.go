// Package cli wires together the Cobra command tree for the auditmark binary.
//
// It defines the root command and all subcommands (merge, consolidate, mark,
// unmark, find, roots, resolve, export, config, version), binds flags, reads
// configuration, resolves files against the workspace roots and returns
// deterministic exit codes.
package cli
