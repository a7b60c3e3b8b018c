package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every auditmark environment variable.
const EnvPrefix = "AUDITMARK"

// EnvConfig holds environment-based configuration. Unset variables leave the
// corresponding setting untouched.
type EnvConfig struct {
	// Env: AUDITMARK_AUTHOR
	Author string `envconfig:"AUTHOR"`

	// Env: AUDITMARK_FORMAT (text, json, markdown, sarif)
	Format string `envconfig:"FORMAT"`

	// Env: AUDITMARK_CONSOLIDATE_BY (path-author or path)
	ConsolidateBy string `envconfig:"CONSOLIDATE_BY"`

	// Env: AUDITMARK_STATE_DIR
	StateDir string `envconfig:"STATE_DIR"`

	// Env: AUDITMARK_SESSION_FILE
	SessionFile string `envconfig:"SESSION_FILE"`

	// Env: AUDITMARK_LOG_LEVEL
	LogLevel string `envconfig:"LOG_LEVEL"`

	// Env: AUDITMARK_LOG_FORMAT (pretty or json)
	LogFormat string `envconfig:"LOG_FORMAT"`

	// Env: AUDITMARK_REDACT_SECRETS
	RedactSecrets *bool `envconfig:"REDACT_SECRETS"`
}

// LoadFromEnv reads the AUDITMARK_* variables.
func LoadFromEnv() (EnvConfig, error) {
	var e EnvConfig
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return EnvConfig{}, fmt.Errorf("reading environment: %w", err)
	}
	return e, nil
}

func mergeEnv(cfg *Config) error {
	e, err := LoadFromEnv()
	if err != nil {
		return err
	}
	if e.Author != "" {
		cfg.Author = e.Author
	}
	if e.Format != "" {
		cfg.Format = e.Format
	}
	if e.ConsolidateBy != "" {
		cfg.ConsolidateBy = e.ConsolidateBy
	}
	if e.StateDir != "" {
		cfg.StateDir = e.StateDir
	}
	if e.SessionFile != "" {
		cfg.SessionFile = e.SessionFile
	}
	if e.LogLevel != "" {
		cfg.Log.Level = e.LogLevel
	}
	if e.LogFormat != "" {
		cfg.Log.Format = e.LogFormat
	}
	if e.RedactSecrets != nil {
		cfg.Privacy.RedactSecrets = *e.RedactSecrets
	}
	return nil
}
