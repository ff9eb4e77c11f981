package database

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/logger"
)

// ConnectRedis opens a client and pings it, retrying with exponential backoff
// to tolerate startup races. Caller should call client.Close().
func ConnectRedis(ctx context.Context, opts *redis.Options, attempts uint, delay time.Duration) (*redis.Client, error) {
	if attempts == 0 {
		attempts = 1
	}
	client := redis.NewClient(opts)
	err := retry.Do(
		func() error {
			pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return client.Ping(pctx).Err()
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warnf("attempt %d/%d: failed to connect to Redis at %s: %v", n+1, attempts, opts.Addr, err)
		}),
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}
