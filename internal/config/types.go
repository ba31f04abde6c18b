package config

// ProviderType identifies a generation backend.
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOpenAI ProviderType = "openai"
	ProviderMock   ProviderType = "mock"
)

// StoreType identifies where the preference is kept.
type StoreType string

const (
	StoreMemory StoreType = "memory"
	StoreFile   StoreType = "file"
	StoreRedis  StoreType = "redis"
)

// Config is the top-level furigo configuration, corresponding to .furigo.yml.
type Config struct {
	Environment string       `yaml:"environment" koanf:"environment"`
	LogLevel    string       `yaml:"log_level" koanf:"log_level"`
	Provider    ProviderType `yaml:"provider" koanf:"provider"`
	Gemini      GeminiConfig `yaml:"gemini" koanf:"gemini"`
	OpenAI      OpenAIConfig `yaml:"openai" koanf:"openai"`
	Server      ServerConfig `yaml:"server" koanf:"server"`
	Store       StoreConfig  `yaml:"store" koanf:"store"`
}

// GeminiConfig holds Gemini settings.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key" koanf:"api_key"`
	Model   string `yaml:"model" koanf:"model"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// OpenAIConfig holds OpenAI-compatible settings.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" koanf:"api_key"`
	Model   string `yaml:"model" koanf:"model"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// ServerConfig holds the local host settings.
type ServerConfig struct {
	Addr            string   `yaml:"addr" koanf:"addr"`
	CORSOrigins     []string `yaml:"cors_origins" koanf:"cors_origins"`
	Overlay         bool     `yaml:"overlay" koanf:"overlay"`
	OverlayDuration string   `yaml:"overlay_duration" koanf:"overlay_duration"`
}

// StoreConfig selects and configures the preference store.
type StoreConfig struct {
	Type      StoreType `yaml:"type" koanf:"type"`
	FilePath  string    `yaml:"file_path" koanf:"file_path"`
	RedisURL  string    `yaml:"redis_url" koanf:"redis_url"`
	KeyPrefix string    `yaml:"key_prefix" koanf:"key_prefix"`
}
