package postgres

import (
	"context"
	"fmt"

	"hermes-payment-tracker/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPool creates a PostgreSQL connection pool using pgx.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := newPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("dbname", cfg.DBName).
		Int32("max_conns", cfg.MaxConns).
		Msg("PostgreSQL archive pool established")

	return pool, nil
}

func newPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	return poolCfg, nil
}

// EnsureSchema creates the archive table if it does not exist.
func EnsureSchema(ctx context.Context, pool Pool) error {
	if _, err := pool.Exec(ctx, archiveSchema); err != nil {
		return fmt.Errorf("creating payment_archive table: %w", err)
	}
	return nil
}

const archiveSchema = `CREATE TABLE IF NOT EXISTS payment_archive (
	payment_id          UUID PRIMARY KEY,
	sender_account_id   TEXT NOT NULL,
	original_amount     BIGINT NOT NULL CHECK (original_amount >= 0),
	amount_sent         BIGINT NOT NULL CHECK (amount_sent >= 0),
	amount_delivered    BIGINT NOT NULL CHECK (amount_delivered >= 0),
	amount_left_to_send BIGINT NOT NULL CHECK (amount_left_to_send >= 0),
	destination         TEXT NOT NULL,
	status              TEXT NOT NULL,
	archived_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`
