package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4/database"
	migrateSQLite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "modernc.org/sqlite" // драйвер "sqlite"
)

// NewSQLiteDB открывает локальную базу SQLite и применяет прагмы надежности.
// SQLite допускает одного писателя, поэтому пул ограничен одним соединением.
func NewSQLiteDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return db, nil
}

// MigrateSQLite применяет встроенные миграции к базе SQLite
func MigrateSQLite(db *sql.DB) error {
	driver, err := sqliteMigrateDriver(db)
	if err != nil {
		return err
	}
	return applyMigrations("migrations/sqlite", "sqlite", driver)
}

// ForceSQLiteVersion выставляет версию схемы SQLite после сбойной миграции
func ForceSQLiteVersion(db *sql.DB, version int) error {
	driver, err := sqliteMigrateDriver(db)
	if err != nil {
		return err
	}
	return forceVersion("migrations/sqlite", "sqlite", driver, version)
}

func sqliteMigrateDriver(db *sql.DB) (database.Driver, error) {
	driver, err := migrateSQLite.WithInstance(db, &migrateSQLite.Config{})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать драйвер sqlite для migrate: %w", err)
	}
	return driver, nil
}
