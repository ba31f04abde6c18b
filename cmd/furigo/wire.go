package main

import (
	"fmt"

	"github.com/ZaguanLabs/furigo"
	"github.com/ZaguanLabs/furigo/internal/config"
	"github.com/ZaguanLabs/furigo/provider"
	"github.com/ZaguanLabs/furigo/store"
)

// buildProvider creates the generation backend named by the config.
func buildProvider(cfg *config.Config) (furigo.AIProvider, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		return provider.NewGeminiProvider(provider.GeminiConfig{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
		}), nil
	case config.ProviderOpenAI:
		return provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		}), nil
	case config.ProviderMock:
		return provider.NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// buildStore creates the preference store named by the config. The returned
// function releases it.
func buildStore(cfg *config.Config) (furigo.PreferenceStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Type {
	case config.StoreMemory:
		return store.NewMemoryStore(), noop, nil
	case config.StoreFile:
		path := cfg.Store.FilePath
		if path == "" {
			p, err := store.DefaultFilePath()
			if err != nil {
				return nil, nil, err
			}
			path = p
		}
		return store.NewFileStore(path), noop, nil
	case config.StoreRedis:
		s, err := store.NewRedisStore(store.RedisConfig{
			URL:       cfg.Store.RedisURL,
			KeyPrefix: cfg.Store.KeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store.Type)
	}
}
