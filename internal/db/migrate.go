package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/job-analysis/backend/internal/config"
	"github.com/job-analysis/backend/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded schema migrations. goose needs a
// database/sql handle, so a short-lived one is opened over the pgx
// stdlib driver and closed before the pool takes over.
func RunMigrations(ctx context.Context, cfg config.PostgresConfig) error {
	dsn, err := BuildDatabaseURL(cfg)
	if err != nil {
		return err
	}

	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer conn.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
