// Package config loads furigo settings from YAML, .env files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the config file looked up in the working directory.
	DefaultPath = ".furigo.yml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "FURIGO_"
)

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() *Config {
	return &Config{
		Environment: "local",
		LogLevel:    "info",
		Provider:    ProviderGemini,
		Gemini: GeminiConfig{
			Model:   "gemini-2.5-flash",
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8787",
			Overlay:         true,
			OverlayDuration: "7s",
		},
		Store: StoreConfig{
			Type:      StoreFile,
			KeyPrefix: "furigo:",
		},
	}
}

// LoadEnvFile loads variables from a .env file without overriding ones that
// are already set. A missing file is not an error unless required is set.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FURIGO_*). Nested keys use a double
// underscore: FURIGO_GEMINI__API_KEY sets gemini.api_key.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Conventional key variables fill in what the config leaves empty
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv(APIKeyEnvVar(ProviderGemini))
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv(APIKeyEnvVar(ProviderOpenAI))
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[ProviderType]bool{
	ProviderGemini: true,
	ProviderOpenAI: true,
	ProviderMock:   true,
}

var validStores = map[StoreType]bool{
	StoreMemory: true,
	StoreFile:   true,
	StoreRedis:  true,
}

// Validate checks that the configuration contains valid values. API keys are
// checked by RequireAPIKey, since only translating commands need one.
func (c *Config) Validate() error {
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of gemini, openai, mock", c.Provider)
	}

	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.Model == "" {
			return fmt.Errorf("gemini.model is required")
		}
	case ProviderOpenAI:
		if c.OpenAI.Model == "" {
			return fmt.Errorf("openai.model is required")
		}
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if _, err := c.OverlayDuration(); err != nil {
		return err
	}
	for _, o := range c.Server.CORSOrigins {
		if strings.TrimSpace(o) == "*" {
			return fmt.Errorf("server.cors_origins must list origins explicitly, \"*\" is not allowed")
		}
	}

	if !validStores[c.Store.Type] {
		return fmt.Errorf("invalid store.type %q: must be one of memory, file, redis", c.Store.Type)
	}
	if c.Store.Type == StoreRedis && c.Store.RedisURL == "" {
		return fmt.Errorf("store.redis_url is required for the redis store")
	}

	return nil
}

// RequireAPIKey reports a missing key for the configured provider.
func (c *Config) RequireAPIKey() error {
	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini api key is not set (use %s or %sGEMINI__API_KEY)", APIKeyEnvVar(ProviderGemini), EnvPrefix)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai api key is not set (use %s or %sOPENAI__API_KEY)", APIKeyEnvVar(ProviderOpenAI), EnvPrefix)
		}
	}
	return nil
}

// OverlayDuration parses server.overlay_duration.
func (c *Config) OverlayDuration() (time.Duration, error) {
	if c.Server.OverlayDuration == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Server.OverlayDuration)
	if err != nil {
		return 0, fmt.Errorf("invalid server.overlay_duration %q: %w", c.Server.OverlayDuration, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("server.overlay_duration must be non-negative")
	}
	return d, nil
}

// BaseURL is the HTTP address clients use to reach the host.
func (c *Config) BaseURL() string {
	return "http://" + c.Server.Addr
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
