package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/petal-labs/dialog/core"
)

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if filepath.Base(path) != "config.yaml" {
		t.Errorf("DefaultConfigPath() = %q, should end with config.yaml", path)
	}
	if os.Getenv("HOME") != "" || os.Getenv("USERPROFILE") != "" {
		if filepath.Base(filepath.Dir(path)) != ".dialog" {
			t.Errorf("DefaultConfigPath() = %q, should be in .dialog directory", path)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil for missing file", err)
	}
	if cfg.DefaultAgent != "" {
		t.Errorf("DefaultAgent = %q, want empty", cfg.DefaultAgent)
	}
	if cfg.Agents == nil {
		t.Error("Agents map should be initialized")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `default_agent: pizza
agents:
  pizza:
    api_key_ref: pizza-token
    language: de
    base_url: http://localhost:9000/v1
    proxy: http://proxy.local:3128
    session_id: kiosk-1
    write_sound_log: true
    sound_log_dir: /var/log/voice
  weather: {}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := &Config{
		DefaultAgent: "pizza",
		Agents: map[string]AgentConfig{
			"pizza": {
				APIKeyRef:     "pizza-token",
				Language:      "de",
				BaseURL:       "http://localhost:9000/v1",
				Proxy:         "http://proxy.local:3128",
				SessionID:     "kiosk-1",
				WriteSoundLog: true,
				SoundLogDir:   "/var/log/voice",
			},
			"weather": {},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("agents: [unclosed"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should fail on invalid YAML")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := &Config{}
	cfg.SetAgent("support", AgentConfig{Language: "fr"})
	cfg.SetAgent("sales", AgentConfig{Language: "es"})

	if cfg.DefaultAgent != "support" {
		t.Errorf("DefaultAgent = %q, want support (first added)", cfg.DefaultAgent)
	}
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perm = %o, want 600", perm)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAgent(t *testing.T) {
	cfg := &Config{Agents: map[string]AgentConfig{"a": {APIKeyRef: "ref-a"}}}

	if got := cfg.GetAgent("a"); got == nil || got.APIKeyRef != "ref-a" {
		t.Errorf("GetAgent(a) = %+v, want ref-a", got)
	}
	if got := cfg.GetAgent("missing"); got != nil {
		t.Errorf("GetAgent(missing) = %+v, want nil", got)
	}
	if got := (&Config{}).GetAgent("a"); got != nil {
		t.Errorf("GetAgent on empty config = %+v, want nil", got)
	}
}

func TestKeyRef(t *testing.T) {
	var nilAgent *AgentConfig
	if got := nilAgent.KeyRef("pizza"); got != "pizza" {
		t.Errorf("KeyRef() = %q, want pizza", got)
	}
	if got := (&AgentConfig{APIKeyRef: "shared"}).KeyRef("pizza"); got != "shared" {
		t.Errorf("KeyRef() = %q, want shared", got)
	}
}

func TestAgentConfiguration(t *testing.T) {
	ac := &AgentConfig{
		Language:      "pt-br",
		BaseURL:       "http://localhost:9000/v1",
		Proxy:         "http://proxy.local:3128",
		WriteSoundLog: true,
		SoundLogDir:   "/tmp/voice",
	}

	cfg, err := ac.Configuration("token")
	if err != nil {
		t.Fatalf("Configuration() error = %v", err)
	}
	if cfg.Language != core.LanguagePortugueseBrazil {
		t.Errorf("Language = %q, want pt-BR", cfg.Language)
	}
	if cfg.BaseURL != "http://localhost:9000/v1/" {
		t.Errorf("BaseURL = %q, want trailing slash", cfg.BaseURL)
	}
	if cfg.Proxy == nil || cfg.Proxy.Host != "proxy.local:3128" {
		t.Errorf("Proxy = %v, want proxy.local:3128", cfg.Proxy)
	}
	if !cfg.WriteSoundLog || cfg.SoundLogDir != "/tmp/voice" {
		t.Errorf("sound log = %v %q, want true /tmp/voice", cfg.WriteSoundLog, cfg.SoundLogDir)
	}
	if cfg.APIKey.Expose() != "token" {
		t.Errorf("APIKey = %q, want token", cfg.APIKey.Expose())
	}
}

func TestAgentConfigurationErrors(t *testing.T) {
	tests := []struct {
		name  string
		agent AgentConfig
	}{
		{"unsupported language", AgentConfig{Language: "klingon"}},
		{"proxy without host", AgentConfig{Proxy: "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.agent.Configuration("token"); err == nil {
				t.Error("Configuration() should fail")
			}
		})
	}
}
