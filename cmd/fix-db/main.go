package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/woogihooni/exmJo/internal/config"
	"github.com/woogihooni/exmJo/pkg/database"
)

// Снимает состояние dirty после сбойной миграции хранилища:
//
//	fix-db <version>
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <version>", os.Args[0])
	}
	version, err := strconv.Atoi(os.Args[1])
	if err != nil || version < 0 {
		log.Fatalf("invalid migration version %q", os.Args[1])
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite:
		db, err := database.NewSQLiteDB(context.Background(), cfg.SQLite.Path)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := database.ForceSQLiteVersion(db, version); err != nil {
			log.Fatalf("Failed to force version: %v", err)
		}

	case config.StorageDriverPostgres:
		db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
		if err != nil {
			log.Fatal(err)
		}
		if sqlDB, err := database.GetSQLDB(db); err == nil {
			defer sqlDB.Close()
		}
		if err := database.ForcePostgresVersion(db, version); err != nil {
			log.Fatalf("Failed to force version: %v", err)
		}

	default:
		log.Fatalf("storage driver %q has no migrations", cfg.Storage.Driver)
	}

	fmt.Printf("Success! Migration version set to %d. You can now run the app normally.\n", version)
}
