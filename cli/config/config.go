// Package config handles CLI configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/petal-labs/dialog/core"
)

// Config represents the CLI configuration.
type Config struct {
	DefaultAgent string                 `yaml:"default_agent"`
	Agents       map[string]AgentConfig `yaml:"agents"`
}

// AgentConfig holds connection settings for one agent.
// The access token itself lives in the keystore under APIKeyRef.
type AgentConfig struct {
	APIKeyRef     string `yaml:"api_key_ref"`
	BaseURL       string `yaml:"base_url,omitempty"`
	Language      string `yaml:"language,omitempty"`
	Proxy         string `yaml:"proxy,omitempty"`
	SessionID     string `yaml:"session_id,omitempty"`
	WriteSoundLog bool   `yaml:"write_sound_log,omitempty"`
	SoundLogDir   string `yaml:"sound_log_dir,omitempty"`
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.dialog/config.yaml
// - Windows: %USERPROFILE%\.dialog\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".dialog", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Agents: make(map[string]AgentConfig),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Agents == nil {
		cfg.Agents = make(map[string]AgentConfig)
	}

	return cfg, nil
}

// SaveConfig writes the configuration atomically, creating the directory if needed.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return renameio.WriteFile(path, data, 0o600)
}

// GetAgent returns the agent config for the given name.
// Returns nil if the agent is not configured.
func (c *Config) GetAgent(name string) *AgentConfig {
	if c.Agents == nil {
		return nil
	}
	if ac, ok := c.Agents[name]; ok {
		return &ac
	}
	return nil
}

// SetAgent adds or replaces an agent. The first agent added becomes the default.
func (c *Config) SetAgent(name string, ac AgentConfig) {
	if c.Agents == nil {
		c.Agents = make(map[string]AgentConfig)
	}
	c.Agents[name] = ac
	if c.DefaultAgent == "" {
		c.DefaultAgent = name
	}
}

// KeyRef returns the keystore entry holding the agent's access token.
// It falls back to the agent name.
func (a *AgentConfig) KeyRef(agent string) string {
	if a != nil && a.APIKeyRef != "" {
		return a.APIKeyRef
	}
	return agent
}

// Configuration builds the data service configuration for the agent.
// A nil agent yields the defaults.
func (a *AgentConfig) Configuration(accessToken string) (*core.Configuration, error) {
	if a == nil {
		return core.NewConfiguration(accessToken, core.DefaultLanguage), nil
	}

	lang, ok := core.ParseLanguage(a.Language)
	if !ok {
		return nil, fmt.Errorf("unsupported language %q (supported: %v)", a.Language, core.SupportedLanguages())
	}

	var opts []core.ConfigOption
	if a.BaseURL != "" {
		opts = append(opts, core.WithBaseURL(a.BaseURL))
	}
	if a.Proxy != "" {
		proxy, err := url.Parse(a.Proxy)
		if err != nil || proxy.Host == "" {
			return nil, fmt.Errorf("invalid proxy %q", a.Proxy)
		}
		opts = append(opts, core.WithProxy(proxy))
	}
	if a.WriteSoundLog {
		opts = append(opts, core.WithSoundLog(a.SoundLogDir))
	}

	return core.NewConfiguration(accessToken, lang, opts...), nil
}
