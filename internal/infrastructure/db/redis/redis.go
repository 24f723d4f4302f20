package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Connect initialises a Redis client from a URL
// (redis://[user:pass@]host:port/db) and validates connectivity with a
// ping. A default timeout is applied when none is provided.
func Connect(ctx context.Context, url string, timeout time.Duration) (*redis.Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
