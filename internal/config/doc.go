// Package config loads and merges auditmark configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (AUDITMARK_AUTHOR, AUDITMARK_FORMAT, AUDITMARK_CONSOLIDATE_BY, etc.),
//     optionally seeded from a .env file in the working directory
//  3. Config file ($XDG_CONFIG_HOME/auditmark/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write a config file, and
// [SetField] to update a single key.
package config
