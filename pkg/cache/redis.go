package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"github.com/ghuser/reactiveshop/pkg/config"
)

const (
	redisPingTimeout    = 2 * time.Second
	redisConnectRetries = 4
)

// RedisClient is the connection pool shared by the item cache and the cart
// session store.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to cfg.RedisURL. While Redis is still starting the
// ping is retried with exponential backoff from 250ms.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*RedisClient, error) {
	return dialRedis(ctx, cfg.RedisURL, retry.WithMaxRetries(redisConnectRetries, retry.NewExponential(250*time.Millisecond)))
}

func dialRedis(ctx context.Context, url string, backoff retry.Backoff) (*RedisClient, error) {
	opts, err := redisOptions(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return &RedisClient{client: rdb}, nil
}

// redisOptions parses url and applies the pool limits. Session reads and
// cache fills are single round trips, so the pool stays small.
func redisOptions(url string) (*redis.Options, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second
	return opts, nil
}

// Ping implements a health check.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the pool. Calling it on a zero RedisClient is a no-op.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the pool to the item cache and the session store.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
