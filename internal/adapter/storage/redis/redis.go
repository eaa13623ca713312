package redis

import (
	"context"
	"fmt"
	"time"

	"hermes-payment-tracker/config"

	goredis "github.com/redis/go-redis/v9"
)

// NewClient creates the pooled Redis client. It does not dial; use Probe to
// find out whether the server is reachable.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

// ProbeResult reports whether the Redis server answered a PING.
type ProbeResult struct {
	Available bool
	Reason    error // set when Available is false
}

// Probe issues a single PING bounded by timeout. It never returns an error;
// an unreachable server is reported through the result.
func Probe(ctx context.Context, client *goredis.Client, timeout time.Duration) ProbeResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := ping(ctx, client); err != nil {
		return ProbeResult{Reason: err}
	}
	return ProbeResult{Available: true}
}

// ping is the single connectivity check shared by Probe and HealthCheck.
func ping(ctx context.Context, client *goredis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis at %s: %w", client.Options().Addr, err)
	}
	return nil
}
