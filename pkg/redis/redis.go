package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ikkim/permit-backend/config"
	"github.com/ikkim/permit-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// ErrNotInitialized is returned by helpers called before Init.
var ErrNotInitialized = errors.New("redis client not initialized")

// ErrNotFound is returned by LoadJSON for a missing or expired key.
var ErrNotFound = errors.New("redis key not found")

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Addr,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

func blacklistKey(tokenID string) string {
	return fmt.Sprintf("blacklist:%s", tokenID)
}

// BlacklistToken adds a token id to the blacklist until expiry passes.
func BlacklistToken(ctx context.Context, tokenID string, expiry time.Duration) error {
	if client == nil {
		return ErrNotInitialized
	}
	logger.Debug("Adding token to blacklist", map[string]interface{}{
		"expiry": expiry.String(),
	})

	if err := client.Set(ctx, blacklistKey(tokenID), "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}

	logger.Debug("Token successfully blacklisted", nil)
	return nil
}

// IsTokenBlacklisted checks if a token id is in the blacklist
func IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	if client == nil {
		return false, ErrNotInitialized
	}
	val, err := client.Get(ctx, blacklistKey(tokenID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err, nil)
		return false, err
	}
	return val == "revoked", nil
}

// Blacklist adapts the package-level blacklist helpers to the token
// revocation interface used by the auth service and middleware.
type Blacklist struct{}

func (Blacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return BlacklistToken(ctx, tokenID, ttl)
}

func (Blacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return IsTokenBlacklisted(ctx, tokenID)
}

// SaveJSON stores value under key as JSON. A zero ttl keeps the key forever.
func SaveJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if client == nil {
		return ErrNotInitialized
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Error("Failed to save key", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	return nil
}

// LoadJSON decodes the JSON stored under key into dest.
func LoadJSON(ctx context.Context, key string, dest interface{}) error {
	if client == nil {
		return ErrNotInitialized
	}
	payload, err := client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		logger.Error("Failed to load key", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func Delete(ctx context.Context, key string) error {
	if client == nil {
		return ErrNotInitialized
	}
	return client.Del(ctx, key).Err()
}
