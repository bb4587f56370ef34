package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/errors"
)

var (
	ErrCacheDisabled = errors.New("cache is disabled")
	ErrCacheMiss     = errors.New("key not found in cache")
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache provides caching using Redis
type RedisCache struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
}

// NewRedisCache returns a disabled cache when no address is configured.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	if cfg.Addr == "" {
		return &RedisCache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	return &RedisCache{
		client:  client,
		enabled: true,
		ttl:     cfg.TTL,
	}, nil
}

func (c *RedisCache) Enabled() bool {
	return c.enabled
}

func (c *RedisCache) TTL() time.Duration {
	return c.ttl
}

// Get retrieves a value from cache
func (c *RedisCache) Get(ctx context.Context, key string, value interface{}) error {
	if !c.enabled {
		return ErrCacheDisabled
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return errors.Wrap(err, "failed to get value from Redis")
	}

	err = json.Unmarshal(data, value)
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal cached value")
	}

	return nil
}

// Set stores a value in cache; a zero expiration uses the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !c.enabled {
		return ErrCacheDisabled
	}
	if expiration == 0 {
		expiration = c.ttl
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to marshal value for caching")
	}

	err = c.client.Set(ctx, key, data, expiration).Err()
	if err != nil {
		return errors.Wrap(err, "failed to set value in Redis")
	}

	return nil
}

// InvalidateDonor drops every cached view derived from the donor's donations.
func (c *RedisCache) InvalidateDonor(ctx context.Context, donorID string) {
	if !c.enabled {
		return
	}

	var keys []string
	iter := c.client.Scan(ctx, 0, GetDonorKeyPattern(donorID), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warnf("scan cache keys for donor %s: %v", donorID, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warnf("invalidate cache for donor %s: %v", donorID, err)
	}
}

// GetDashboardCacheKey generates a cache key for a donor dashboard
func GetDashboardCacheKey(donorID string) string {
	return fmt.Sprintf("donor:%s:dashboard", donorID)
}

// GetAnalyticsCacheKey generates a cache key for monthly analytics over a timeframe
func GetAnalyticsCacheKey(donorID string, timeframeDays int) string {
	return fmt.Sprintf("donor:%s:analytics:%d", donorID, timeframeDays)
}

func GetDonorKeyPattern(donorID string) string {
	return fmt.Sprintf("donor:%s:*", donorID)
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	if !c.enabled || c.client == nil {
		return nil
	}

	return c.client.Close()
}
