package store

import (
	"context"
	"strconv"
	"time"

	"github.com/ZaguanLabs/furigo"
	"github.com/redis/go-redis/v9"
)

// learningModeKey is the key holding the learning mode flag, after the prefix.
const learningModeKey = "learningMode"

// RedisStore is a Redis-backed preference store shared by every host using
// the same server, which keeps the preference in sync across machines.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds configuration for the Redis store.
type RedisConfig struct {
	URL       string // Redis connection URL (e.g., "redis://localhost:6379")
	KeyPrefix string // Prefix for all keys (default: "furigo:")
}

// NewRedisStore creates a new Redis store with the given configuration.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, &furigo.StoreError{Message: "parsing Redis URL", Cause: err}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, &furigo.StoreError{Message: "connecting to Redis", Cause: err}
	}

	return NewRedisStoreFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreFromClient creates a RedisStore from an existing Redis client.
func NewRedisStoreFromClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "furigo:"
	}

	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// LoadPreference reads the learning mode flag. A missing key yields the default.
func (s *RedisStore) LoadPreference(ctx context.Context) (furigo.UserPreference, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+learningModeKey).Result()
	if err == redis.Nil {
		return furigo.DefaultPreference(), nil
	}
	if err != nil {
		return furigo.DefaultPreference(), &furigo.StoreError{Message: "reading preference", Cause: err}
	}

	enabled, err := strconv.ParseBool(val)
	if err != nil {
		return furigo.DefaultPreference(), &furigo.StoreError{Message: "decoding preference", Cause: err}
	}
	return furigo.UserPreference{LearningMode: enabled}, nil
}

// SavePreference writes the learning mode flag without expiration.
func (s *RedisStore) SavePreference(ctx context.Context, pref furigo.UserPreference) error {
	err := s.client.Set(ctx, s.keyPrefix+learningModeKey, strconv.FormatBool(pref.LearningMode), 0).Err()
	if err != nil {
		return &furigo.StoreError{Message: "writing preference", Cause: err}
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Verify RedisStore implements PreferenceStore
var _ PreferenceStore = (*RedisStore)(nil)
