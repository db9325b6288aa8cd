package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/config"
)

// Postgres wraps access to a pgx connection pool. The pool lives for the
// whole process and is the only shared resource between requests.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres establishes the connection pool and verifies connectivity.
func NewPostgres(ctx context.Context, cfg config.DBConfig, logger *zap.Logger) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, TranslateError(err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, TranslateError(err)
	}

	logger.Info("connected to postgres",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
		zap.Int32("max_conns", poolCfg.MaxConns))
	return &Postgres{Pool: pool}, nil
}

// EnsureDatabase creates the target database when it does not exist yet. It
// uses a one-shot connection against the maintenance database and must run
// before the pool is opened.
func EnsureDatabase(ctx context.Context, cfg config.DBConfig, logger *zap.Logger) error {
	conn, err := pgx.Connect(ctx, cfg.AdminDSN())
	if err != nil {
		return TranslateError(err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, cfg.Name).Scan(&exists)
	if err != nil {
		return TranslateError(err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE cannot be parameterized.
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.Name}.Sanitize()); err != nil {
		return TranslateError(err)
	}
	logger.Info("database created", zap.String("database", cfg.Name))
	return nil
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return fmt.Errorf("postgres pool not initialized")
	}
	return p.Pool.Ping(ctx)
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
