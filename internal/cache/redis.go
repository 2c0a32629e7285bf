package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/archquery/archquery/pkg/archquery"
)

// RedisCache is a Redis-backed Cache.
type RedisCache struct {
	client *redis.Client
	config Config
}

// RedisOptions configures the underlying Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Config   Config
}

// DefaultRedisOptions returns the default Redis connection options.
func DefaultRedisOptions() RedisOptions {
	return RedisOptions{
		Addr:   "localhost:6379",
		Config: DefaultConfig(),
	}
}

// NewRedisCache dials Redis and verifies the connection with a Ping.
func NewRedisCache(opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client, config: opts.Config}, nil
}

// NewRedisCacheWithClient wraps an already-constructed *redis.Client,
// the way tests point a RedisCache at a miniredis instance.
func NewRedisCacheWithClient(client *redis.Client, config Config) *RedisCache {
	return &RedisCache{client: client, config: config}
}

// Get returns the cached Result for input, or (nil, false, nil) on a
// cache miss.
func (c *RedisCache) Get(ctx context.Context, input string) (*archquery.Result, bool, error) {
	data, err := c.client.Get(ctx, keyFor(c.config.Prefix, input)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	result, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// Put stores result under input's cache key with the configured TTL.
func (c *RedisCache) Put(ctx context.Context, input string, result *archquery.Result) error {
	data, err := encode(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyFor(c.config.Prefix, input), data, c.config.TTL).Err()
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
