// Auditmark is a local-first CLI for tracking which code a security review
// has covered.
//
// It records reviewed line ranges per reviewer, keeps findings and notes in
// .weaudit files next to the code, and reconciles state across reviewers and
// workspace roots.
//
// Usage:
//
//	auditmark mark src/Vault.sol 40 72        # mark lines 40-72 as reviewed
//	auditmark mark --whole src/Token.sol      # toggle a whole file
//	auditmark unmark src/Vault.sol 50 55      # carve lines out of a region
//	auditmark find src/Vault.sol 60           # look for overlapping findings
//	auditmark add finding src/Vault.sol 60 64 --label "Reentrancy" --severity High
//	auditmark resolve-entry "Reentrancy"      # move it to the resolved list
//	auditmark merge a.weaudit b.weaudit --out all.weaudit
//	auditmark export --format markdown --out report.md
//	auditmark --session review.yaml roots     # list labelled roots
//	auditmark --root . --root ../lib roots --save review.yaml
package main
