// Package redact strips secrets from finding write-ups before they leave the
// workspace in an exported report.
//
// Auditors often paste the offending credential into a finding's
// description or exploit scenario. Detection uses regex heuristics for common
// secret shapes: API keys, JWTs, private key headers, AWS access keys, bearer
// tokens and provider-specific tokens.
package redact
