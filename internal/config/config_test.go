package config

import (
	"testing"
)

func TestLoadMissingConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("Load() with no config file = %+v, want nil", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := &Config{
		Provider: ProviderAnthropic,
		Anthropic: RemoteProviderConfig{
			Model:  "claude-sonnet-4-5",
			APIKey: "sk-test",
		},
		Local: LocalConfig{
			Command: "llama-server",
			Port:    9090,
		},
	}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded == nil {
		t.Fatal("Load() returned nil after Save")
	}

	if loaded.Provider != ProviderAnthropic {
		t.Errorf("Provider = %s, want %s", loaded.Provider, ProviderAnthropic)
	}
	if loaded.Anthropic.Model != "claude-sonnet-4-5" {
		t.Errorf("Anthropic.Model = %s, want claude-sonnet-4-5", loaded.Anthropic.Model)
	}
	if loaded.Local.Port != 9090 {
		t.Errorf("Local.Port = %d, want 9090", loaded.Local.Port)
	}
}

func TestExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	exists, err := Exists()
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true before Save")
	}

	if err := Save(&Config{Provider: ProviderOpenAI}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	exists, err = Exists()
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false after Save")
	}
}

func TestResolveAPIKey(t *testing.T) {
	cfg := &Config{
		OpenAI: RemoteProviderConfig{APIKey: "from-config"},
	}

	t.Setenv("UWU_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	if got := cfg.ResolveAPIKey(ProviderOpenAI); got != "from-config" {
		t.Errorf("ResolveAPIKey = %q, want config value", got)
	}

	t.Setenv("OPENAI_API_KEY", "from-env")
	if got := cfg.ResolveAPIKey(ProviderOpenAI); got != "from-env" {
		t.Errorf("ResolveAPIKey = %q, want env value", got)
	}

	// The UWU_ prefixed variable takes priority over the generic one
	t.Setenv("UWU_OPENAI_API_KEY", "from-uwu-env")
	if got := cfg.ResolveAPIKey(ProviderOpenAI); got != "from-uwu-env" {
		t.Errorf("ResolveAPIKey = %q, want UWU_ env value", got)
	}

	if got := cfg.ResolveAPIKey(ProviderLocal); got != "" {
		t.Errorf("ResolveAPIKey(local) = %q, want empty", got)
	}
}

func TestLocalBaseURL(t *testing.T) {
	if got := (LocalConfig{}).BaseURL(); got != "http://localhost:8080/v1" {
		t.Errorf("default BaseURL = %q", got)
	}
	if got := (LocalConfig{Port: 9090}).BaseURL(); got != "http://localhost:9090/v1" {
		t.Errorf("BaseURL with port = %q", got)
	}
}
