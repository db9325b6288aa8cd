package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const migrationsTableDDL = `
CREATE TABLE IF NOT EXISTS migrations (
    id SERIAL PRIMARY KEY,
    filename TEXT NOT NULL UNIQUE,
    executed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// RunMigrations applies the pending .sql files under dir in filename order.
// Each file runs inside its own transaction and is recorded in the
// migrations table, so a failed file leaves earlier ones applied and is
// retried on the next run.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, dir string, logger *zap.Logger) error {
	if _, err := pool.Exec(ctx, migrationsTableDDL); err != nil {
		return fmt.Errorf("create migrations table: %w", TranslateError(err))
	}

	applied, err := appliedMigrations(ctx, pool)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		filenames = append(filenames, entry.Name())
	}
	sort.Strings(filenames)

	executed := 0
	for _, name := range filenames {
		if applied[name] {
			logger.Debug("skipping applied migration", zap.String("file", name))
			continue
		}
		if err := applyMigration(ctx, pool, dir, name); err != nil {
			return err
		}
		logger.Info("migration applied", zap.String("file", name))
		executed++
	}

	if executed == 0 {
		logger.Info("no pending migrations")
	} else {
		logger.Info("migrations applied", zap.Int("count", executed))
	}
	return nil
}

func appliedMigrations(ctx context.Context, pool *pgxpool.Pool) (map[string]bool, error) {
	rows, err := pool.Query(ctx, `SELECT filename FROM migrations ORDER BY executed_at`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", TranslateError(err))
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, TranslateError(err)
		}
		applied[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, TranslateError(err)
	}
	return applied, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, dir, name string) error {
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return TranslateError(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("apply migration %s: %w", name, TranslateError(err))
	}
	if _, err := tx.Exec(ctx, `INSERT INTO migrations (filename) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("record migration %s: %w", name, TranslateError(err))
	}
	return tx.Commit(ctx)
}
