package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Server.Bind != DefaultBind {
		t.Errorf("bind = %q, want %q", cfg.Server.Bind, DefaultBind)
	}
	if cfg.Session.TTL() != 24*time.Hour {
		t.Errorf("session TTL = %v, want 24h", cfg.Session.TTL())
	}
	if cfg.Generation.DefaultProvider != "qwen" {
		t.Errorf("default provider = %q, want qwen", cfg.Generation.DefaultProvider)
	}
	if got := cfg.Generation.Priority; len(got) != 3 || got[0] != "doubao" || got[1] != "deepseek" || got[2] != "qwen" {
		t.Errorf("priority = %v, want [doubao deepseek qwen]", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  bind: "127.0.0.1:9090"
  root_path: "/tools/seo"
auth:
  username: editor
  password: secret
session:
  ttl_hours: 2
providers:
  deepseek:
    api_key: test-key
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Bind != "127.0.0.1:9090" {
		t.Errorf("bind = %q", cfg.Server.Bind)
	}
	if cfg.Server.RootPath != "/tools/seo" {
		t.Errorf("root path = %q", cfg.Server.RootPath)
	}
	if cfg.Auth.Username != "editor" || cfg.Auth.Password != "secret" {
		t.Errorf("auth = %q/%q", cfg.Auth.Username, cfg.Auth.Password)
	}
	if cfg.Session.TTL() != 2*time.Hour {
		t.Errorf("ttl = %v", cfg.Session.TTL())
	}
	if cfg.Providers.DeepSeek.APIKey != "test-key" {
		t.Errorf("deepseek key = %q", cfg.Providers.DeepSeek.APIKey)
	}
	// Untouched sections keep defaults.
	if cfg.Providers.DeepSeek.Model != "deepseek-chat" {
		t.Errorf("deepseek model = %q", cfg.Providers.DeepSeek.Model)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.Username != DefaultUsername {
		t.Errorf("username = %q", cfg.Auth.Username)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_USERNAME", "ops")
	t.Setenv("AUTH_PASSWORD", "hunter2")
	t.Setenv("SESSION_EXPIRE_HOURS", "6")
	t.Setenv("DOUBAO_API_KEY", "dk-123")
	t.Setenv("AI_API_PROVIDER", "doubao")
	t.Setenv("ROOT_PATH", "/tools/tisi-helper")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.Username != "ops" || cfg.Auth.Password != "hunter2" {
		t.Errorf("auth = %q/%q", cfg.Auth.Username, cfg.Auth.Password)
	}
	if cfg.Session.TTLHours != 6 {
		t.Errorf("ttl hours = %d", cfg.Session.TTLHours)
	}
	if cfg.Providers.Doubao.APIKey != "dk-123" {
		t.Errorf("doubao key = %q", cfg.Providers.Doubao.APIKey)
	}
	if cfg.Generation.DefaultProvider != "doubao" {
		t.Errorf("default provider = %q", cfg.Generation.DefaultProvider)
	}
	if cfg.Server.RootPath != "/tools/tisi-helper" {
		t.Errorf("root path = %q", cfg.Server.RootPath)
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.Generation.DefaultProvider = "ernie"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown default provider")
	}

	cfg = Default()
	cfg.Generation.Priority = []string{"doubao", "gpt4"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown priority entry")
	}
}

func TestProviderSettingsFor(t *testing.T) {
	cfg := Default()
	for _, id := range KnownProviders {
		if _, ok := cfg.ProviderSettingsFor(id); !ok {
			t.Errorf("missing settings for %q", id)
		}
	}
	if _, ok := cfg.ProviderSettingsFor("ernie"); ok {
		t.Error("unexpected settings for unknown provider")
	}
}
