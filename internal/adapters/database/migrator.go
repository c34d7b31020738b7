package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

type Migrator struct {
	db *sqlx.DB

	logger *slog.Logger
}

func NewDatabaseMigrator(db *sqlx.DB, logger *slog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger,
	}
}

// Migrate creates schemaName if needed and applies all pending migrations to it
func (m *Migrator) Migrate(ctx context.Context, schemaName string) error {
	return m.withInstance(ctx, schemaName, func(instance *migrate.Migrate) error {
		m.logger.InfoContext(ctx, "Starting migrations...", slog.String("schema", schemaName))
		if err := instance.Up(); err != nil {
			if !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migrate: failed to migrate: %w", err)
			}
			m.logger.InfoContext(ctx, "No migrations to run.")
		}
		m.logger.InfoContext(ctx, "Migrations completed successfully.")
		return nil
	})
}

func (m *Migrator) withInstance(ctx context.Context, schemaName string, run func(*migrate.Migrate) error) error {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("migrate: failed to connect to db: %w", err)
	}
	defer conn.Close()

	instance, closeInstance, err := newMigrateInstance(ctx, conn, schemaName)
	if err != nil {
		return err
	}
	defer closeInstance()

	return run(instance)
}

func newMigrateInstance(ctx context.Context, conn *sql.Conn, schemaName string) (*migrate.Migrate, func(), error) {
	_, err := conn.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pq.QuoteIdentifier(schemaName)))
	if err != nil {
		return nil, nil, fmt.Errorf("migrate: failed to create schema: %w", err)
	}

	_, err = conn.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", pq.QuoteIdentifier(schemaName)))
	if err != nil {
		return nil, nil, fmt.Errorf("migrate: failed to set search path: %w", err)
	}

	migrationSource, err := iofs.New(embeddedMigrations, "migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("migrate: failed to create driver from embedded migrations: %w", err)
	}

	dbDriver, err := postgres.WithConnection(ctx, conn, &postgres.Config{
		DatabaseName: DB_NAME,
		SchemaName:   schemaName,
	})
	if err != nil {
		migrationSource.Close()
		return nil, nil, fmt.Errorf("migrate: failed to create postgres driver: %w", err)
	}

	instance, err := migrate.NewWithInstance("iofs", migrationSource, "postgres", dbDriver)
	if err != nil {
		migrationSource.Close()
		return nil, nil, fmt.Errorf("migrate: failed to create migration instance: %w", err)
	}

	// Closes both the source and the database driver
	return instance, func() { instance.Close() }, nil
}
