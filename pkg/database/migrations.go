package database

import (
	"embed"
	"errors"
	"fmt"
	"log"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

func newMigrator(dir, dbName string, driver database.Driver) (*migrateV4.Migrate, error) {
	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть встроенные миграции %s: %w", dir, err)
	}

	m, err := migrateV4.NewWithInstance("iofs", source, dbName, driver)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать экземпляр migrate: %w", err)
	}
	return m, nil
}

// applyMigrations применяет встроенные миграции из каталога dir для драйвера
func applyMigrations(dir, dbName string, driver database.Driver) error {
	m, err := newMigrator(dir, dbName, driver)
	if err != nil {
		return err
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrateV4.ErrNoChange):
		log.Printf("[Migrations] %s: изменений нет, схема актуальна.", dbName)
	case err != nil:
		return fmt.Errorf("ошибка применения миграций 'up' (%s): %w", dbName, err)
	default:
		log.Printf("[Migrations] %s: миграции успешно применены.", dbName)
	}
	return nil
}

// forceVersion снимает признак dirty, выставляя версию схемы вручную
func forceVersion(dir, dbName string, driver database.Driver, version int) error {
	m, err := newMigrator(dir, dbName, driver)
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("не удалось установить версию миграций %d (%s): %w", version, dbName, err)
	}
	log.Printf("[Migrations] %s: версия схемы принудительно установлена в %d", dbName, version)
	return nil
}
