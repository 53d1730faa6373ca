package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avolkoff/moneymap/pkg/logger"
)

const (
	// DefaultTTL is how long a resolved Splitwise user ID stays cached
	DefaultTTL = 24 * time.Hour

	// KeyPrefix is the prefix for identity cache keys
	KeyPrefix = "splitwise:identity:"
)

// IdentityCache memoizes the Splitwise user ID behind an API key so
// repeated imports skip the get_current_user round trip.
type IdentityCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewIdentityCache creates a new identity cache
func NewIdentityCache(client *redis.Client, log *logger.Logger) *IdentityCache {
	return &IdentityCache{
		client: client,
		ttl:    DefaultTTL,
		logger: log.WithField("component", "identity_cache"),
	}
}

// NewIdentityCacheWithTTL creates a new identity cache with custom TTL
func NewIdentityCacheWithTTL(client *redis.Client, ttl time.Duration, log *logger.Logger) *IdentityCache {
	return &IdentityCache{
		client: client,
		ttl:    ttl,
		logger: log.WithField("component", "identity_cache"),
	}
}

// GetUserID returns the cached Splitwise user ID for the API key
func (c *IdentityCache) GetUserID(ctx context.Context, apiKey string) (int64, bool, error) {
	key := cacheKey(apiKey)

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		c.logger.Debug("identity cache miss")
		return 0, false, nil
	}
	if err != nil {
		c.logger.Error("cache error", "operation", "get", "error", err)
		return 0, false, fmt.Errorf("failed to get cached identity: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse cached identity: %w", err)
	}

	c.logger.Debug("identity cache hit")
	return userID, true, nil
}

// SetUserID caches the Splitwise user ID for the API key
func (c *IdentityCache) SetUserID(ctx context.Context, apiKey string, userID int64) error {
	key := cacheKey(apiKey)

	if err := c.client.Set(ctx, key, strconv.FormatInt(userID, 10), c.ttl).Err(); err != nil {
		c.logger.Error("cache error", "operation", "set", "error", err)
		return fmt.Errorf("failed to set cached identity: %w", err)
	}

	return nil
}

// Invalidate drops the cached identity for the API key
func (c *IdentityCache) Invalidate(ctx context.Context, apiKey string) error {
	return c.client.Del(ctx, cacheKey(apiKey)).Err()
}

// cacheKey hashes the API key; raw credentials never reach Redis
func cacheKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return KeyPrefix + hex.EncodeToString(sum[:])
}
