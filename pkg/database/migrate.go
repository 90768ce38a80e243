package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker_app/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// RunPostgresMigrations applies every pending migration to the PostgreSQL database at databaseURL.
// It opens its own database/sql connection through the pgx stdlib driver.
func RunPostgresMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping migration database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}
	return runMigrations(driver, "postgres", migrations.PostgresDir)
}

// RunSQLiteMigrations applies every pending migration to the SQLite database at path.
func RunSQLiteMigrations(path string) error {
	db, err := sql.Open("sqlite", SQLiteDSN(path))
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer db.Close()

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	return runMigrations(driver, "sqlite", migrations.SQLiteDir)
}

func runMigrations(driver migratedb.Driver, dbName, dir string) error {
	src, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dbName, driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		slog.Info("No new migrations to apply", slog.String("driver", dbName))
	} else {
		slog.Info("Database migrations applied", slog.String("driver", dbName))
	}
	return nil
}
