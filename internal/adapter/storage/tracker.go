// Package storage selects the PaymentTracker backend at startup.
package storage

import (
	"context"
	"fmt"

	"hermes-payment-tracker/config"
	"hermes-payment-tracker/internal/adapter/storage/memory"
	"hermes-payment-tracker/internal/adapter/storage/redis"
	"hermes-payment-tracker/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Selection is the tracker chosen for the process lifetime.
type Selection struct {
	Tracker ports.PaymentTracker
	Durable bool
	Reason  error // why the durable backend was not used
}

// NewPaymentTracker probes Redis once and returns the Redis tracker when it
// answers, or the in-memory tracker otherwise. It never fails: an unreachable
// backend degrades the process to non-durable mode with a warning.
func NewPaymentTracker(ctx context.Context, client *goredis.Client, redisCfg config.RedisConfig, trackerCfg config.TrackerConfig, log zerolog.Logger) Selection {
	probe := redis.Probe(ctx, client, redisCfg.ProbeTimeout)
	if probe.Available {
		tracker := redis.NewPaymentTracker(client, trackerCfg.Retention, log.With().Str("component", "redis_tracker").Logger())
		err := tracker.LoadScripts(ctx)
		if err == nil {
			log.Info().
				Str("addr", redisCfg.Addr()).
				Bool("durable", true).
				Dur("retention", trackerCfg.Retention).
				Msg("Using Redis payment tracker")
			return Selection{Tracker: tracker, Durable: true}
		}
		probe.Reason = fmt.Errorf("loading tracker scripts: %w", err)
	}

	log.Warn().
		Err(probe.Reason).
		Str("addr", redisCfg.Addr()).
		Bool("durable", false).
		Str("hint", fmt.Sprintf("is Redis running on %s?", redisCfg.Addr())).
		Msg("Using in-memory payment tracker: non-durable fallback in use; do not run this configuration in production")

	return Selection{
		Tracker: memory.NewPaymentTracker(trackerCfg.Retention, log.With().Str("component", "memory_tracker").Logger()),
		Reason:  probe.Reason,
	}
}
