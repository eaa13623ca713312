package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// HealthCheck reports on the tracker's Redis for /health. It runs the same
// PING as the startup probe, bounded by the request context.
type HealthCheck struct {
	client *goredis.Client
}

func NewHealthCheck(client *goredis.Client) *HealthCheck {
	return &HealthCheck{client: client}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	return ping(ctx, h.client)
}

func (h *HealthCheck) Name() string {
	return "redis"
}
