// Where: internal/config/global.go
// What: Global config load/save helpers.
// Why: Manage ~/.kagglectl/config.yaml consistently.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/meta"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents the ~/.kagglectl/config.yaml global configuration.
// Every field has a default so a missing file is never an error.
type GlobalConfig struct {
	Version     int    `yaml:"version"`
	MCPEndpoint string `yaml:"mcp_endpoint,omitempty"`
	KaggleBin   string `yaml:"kaggle_bin,omitempty"`
	// CallTimeoutSeconds bounds one external call wall-clock.
	CallTimeoutSeconds int `yaml:"call_timeout_seconds,omitempty"`
	// RateLimitSeconds is the unconditional delay between successive calls.
	RateLimitSeconds int `yaml:"rate_limit_seconds,omitempty"`
}

// DefaultGlobalConfig returns an initialized GlobalConfig with version set.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		Version:            1,
		MCPEndpoint:        meta.DefaultMCPEndpoint,
		KaggleBin:          meta.DefaultKaggleBin,
		CallTimeoutSeconds: 30,
		RateLimitSeconds:   5,
	}
}

// CallTimeout returns the per-call wall-clock bound.
func (c GlobalConfig) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSeconds) * time.Second
}

// RateLimit returns the inter-call delay.
func (c GlobalConfig) RateLimit() time.Duration {
	return time.Duration(c.RateLimitSeconds) * time.Second
}

// GlobalConfigPath returns the path to the global config file.
// Respects KAGGLECTL_CONFIG_PATH and KAGGLECTL_CONFIG_HOME overrides.
func GlobalConfigPath() (string, error) {
	if override := strings.TrimSpace(os.Getenv(meta.EnvPrefix + "_CONFIG_PATH")); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	if override := strings.TrimSpace(os.Getenv(meta.EnvPrefix + "_CONFIG_HOME")); override != "" {
		return filepath.Join(override, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, meta.HomeDir, "config.yaml"), nil
}

// LoadGlobalConfig reads and parses a global config file.
func LoadGlobalConfig(path string) (GlobalConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return GlobalConfig{}, err
	}
	var cfg GlobalConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return GlobalConfig{}, err
	}
	return normalize(cfg), nil
}

// SaveGlobalConfig writes the global config, creating parent directories.
func SaveGlobalConfig(path string, cfg GlobalConfig) error {
	payload, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// Load resolves the config path and loads it, falling back to defaults when
// the file does not exist.
func Load() (GlobalConfig, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		return GlobalConfig{}, err
	}
	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultGlobalConfig(), nil
		}
		return GlobalConfig{}, err
	}
	return cfg, nil
}

func normalize(cfg GlobalConfig) GlobalConfig {
	def := DefaultGlobalConfig()
	if cfg.Version == 0 {
		cfg.Version = def.Version
	}
	if strings.TrimSpace(cfg.MCPEndpoint) == "" {
		cfg.MCPEndpoint = def.MCPEndpoint
	}
	if strings.TrimSpace(cfg.KaggleBin) == "" {
		cfg.KaggleBin = def.KaggleBin
	}
	if cfg.CallTimeoutSeconds <= 0 {
		cfg.CallTimeoutSeconds = def.CallTimeoutSeconds
	}
	if cfg.RateLimitSeconds < 0 {
		cfg.RateLimitSeconds = def.RateLimitSeconds
	}
	return cfg
}
