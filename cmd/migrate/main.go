// Command migrate applies pending SQL migrations and exits. It provisions the
// schema the API depends on and can run independently of the service.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/observability"
	"github.com/spec-kit/user-service/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	if err := persistence.EnsureDatabase(ctx, cfg.DB, logger); err != nil {
		logger.Fatal("failed to ensure database", zap.Error(err))
	}

	pg, err := persistence.NewPostgres(ctx, cfg.DB, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.Pool, cfg.DB.MigrationsDir, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
}
