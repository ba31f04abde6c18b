package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.Provider != def.Provider || cfg.Server.Addr != def.Server.Addr || cfg.Store.Type != def.Store.Type {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if len(cfg.Server.CORSOrigins) != 0 {
		t.Errorf("expected no extra origins by default, got %v", cfg.Server.CORSOrigins)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furigo.yml")
	data := []byte(`provider: openai
openai:
  model: gpt-4o
server:
  addr: 127.0.0.1:9999
store:
  type: memory
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FURIGO_LOG_LEVEL", "debug")
	t.Setenv("FURIGO_OPENAI__API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("OpenAI.Model = %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("OpenAI.APIKey = %q", cfg.OpenAI.APIKey)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	// untouched keys keep their defaults
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q", cfg.Gemini.Model)
	}
	if cfg.BaseURL() != "http://127.0.0.1:9999" {
		t.Errorf("BaseURL = %q", cfg.BaseURL())
	}
}

func TestLoad_ConventionalKeyVariable(t *testing.T) {
	t.Setenv("FURIGO_GEMINI__API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gemini.APIKey != "g-key" {
		t.Errorf("Gemini.APIKey = %q", cfg.Gemini.APIKey)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		t.Errorf("RequireAPIKey failed: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".furigo.yml")

	cfg := DefaultConfig()
	cfg.Store.Type = StoreRedis
	cfg.Store.RedisURL = "redis://localhost:6379/0"
	cfg.Server.OverlayDuration = "3s"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Store.Type != StoreRedis || loaded.Store.RedisURL != cfg.Store.RedisURL {
		t.Errorf("store not round-tripped: %+v", loaded.Store)
	}
	d, err := loaded.OverlayDuration()
	if err != nil || d != 3*time.Second {
		t.Errorf("OverlayDuration = %v, %v", d, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.Provider = "claude" }},
		{"missing gemini model", func(c *Config) { c.Gemini.Model = "" }},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }},
		{"bad overlay duration", func(c *Config) { c.Server.OverlayDuration = "soon" }},
		{"negative overlay duration", func(c *Config) { c.Server.OverlayDuration = "-1s" }},
		{"wildcard origin", func(c *Config) { c.Server.CORSOrigins = []string{"chrome-extension://abc", "*"} }},
		{"unknown store", func(c *Config) { c.Store.Type = "sqlite" }},
		{"redis without url", func(c *Config) { c.Store.Type = StoreRedis }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRequireAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.RequireAPIKey(); err == nil {
		t.Error("expected missing gemini key")
	}

	cfg.Provider = ProviderMock
	if err := cfg.RequireAPIKey(); err != nil {
		t.Errorf("mock provider needs no key: %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env"), false); err != nil {
		t.Errorf("missing optional env file should be ignored: %v", err)
	}
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env"), true); err == nil {
		t.Error("missing required env file should fail")
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("FURIGO_TEST_VALUE=from-dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FURIGO_TEST_VALUE", "")
	os.Unsetenv("FURIGO_TEST_VALUE")

	if err := LoadEnvFile(path, true); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
	if got := os.Getenv("FURIGO_TEST_VALUE"); got != "from-dotenv" {
		t.Errorf("FURIGO_TEST_VALUE = %q", got)
	}
}
