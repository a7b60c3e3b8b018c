package config

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/dshills/auditmark/internal/audit"
)

// Config represents the auditmark configuration.
type Config struct {
	Author        string        `json:"author,omitempty"`
	Format        string        `json:"format"`
	ConsolidateBy string        `json:"consolidateBy"`
	StateDir      string        `json:"stateDir"`
	SessionFile   string        `json:"sessionFile,omitempty"`
	Log           LogConfig     `json:"log"`
	Privacy       PrivacyConfig `json:"privacy"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// PrivacyConfig controls redaction on export.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format:        "text",
		ConsolidateBy: audit.KeyPathAuthor.String(),
		StateDir:      ".vscode",
		Log: LogConfig{
			Level:  "INFO",
			Format: "pretty",
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
		},
	}
}

// ConsolidationKey returns the parsed consolidateBy setting.
func (c Config) ConsolidationKey() (audit.ConsolidationKey, error) {
	return audit.ParseConsolidationKey(c.ConsolidateBy)
}

// ConfigDir returns the platform-appropriate config directory for auditmark.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "auditmark"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "auditmark"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "auditmark"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "auditmark"), nil
	default:
		return filepath.Join(home, ".config", "auditmark"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- .env <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)

	if err := LoadDotEnv(""); err != nil {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	if cfg.Author == "" {
		cfg.Author = defaultAuthor()
	}
	if _, err := cfg.ConsolidationKey(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultAuthor() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return filepath.Base(u.Username)
	}
	return "auditor"
}

func mergeFile(dst *Config, src Config) {
	if src.Author != "" {
		dst.Author = src.Author
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.ConsolidateBy != "" {
		dst.ConsolidateBy = src.ConsolidateBy
	}
	if src.StateDir != "" {
		dst.StateDir = src.StateDir
	}
	if src.SessionFile != "" {
		dst.SessionFile = src.SessionFile
	}
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
	if src.Log.Format != "" {
		dst.Log.Format = src.Log.Format
	}
	// A loaded file carries at least one non-zero field; only then is its
	// redactSecrets=false an explicit choice rather than a missing key.
	if src != (Config{}) {
		dst.Privacy.RedactSecrets = src.Privacy.RedactSecrets
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "author":
		cfg.Author = value
	case "format":
		cfg.Format = value
	case "consolidateBy":
		if _, err := audit.ParseConsolidationKey(value); err != nil {
			return err
		}
		cfg.ConsolidateBy = value
	case "stateDir":
		cfg.StateDir = value
	case "sessionFile":
		cfg.SessionFile = value
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
