// Package app собирает зависимости приложения по конфигурации.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/woogihooni/exmJo/internal/config"
	"github.com/woogihooni/exmJo/internal/domain/repository"
	"github.com/woogihooni/exmJo/internal/repository/bankfile"
	"github.com/woogihooni/exmJo/internal/repository/kv"
	"github.com/woogihooni/exmJo/internal/repository/memory"
	pgRepo "github.com/woogihooni/exmJo/internal/repository/postgres"
	redisRepo "github.com/woogihooni/exmJo/internal/repository/redis"
	sqliteRepo "github.com/woogihooni/exmJo/internal/repository/sqlite"
	"github.com/woogihooni/exmJo/internal/service"
	"github.com/woogihooni/exmJo/pkg/database"
)

// App содержит собранные сервисы
type App struct {
	Config *config.Config
	Store  repository.KeyValueStore

	Bank   *service.QuestionBank
	Review *service.ReviewService
	Resume *service.ResumeService
	Quiz   *service.QuizService
	Export *service.ExportService
}

// New открывает хранилище, загружает банк вопросов и создает сервисы
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	questionRepo, err := bankfile.NewQuestionRepository(cfg.Bank.Path, cfg.Bank.Sheet)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	bank, err := service.LoadQuestionBank(questionRepo)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	reviewRepo := kv.NewReviewRepo(store, cfg.Storage.KeyPrefix)
	resumeRepo := kv.NewResumeRepo(store, cfg.Storage.KeyPrefix)

	review := service.NewReviewService(reviewRepo, bank)
	resume := service.NewResumeService(resumeRepo, bank)

	return &App{
		Config: cfg,
		Store:  store,
		Bank:   bank,
		Review: review,
		Resume: resume,
		Quiz:   service.NewQuizService(bank, review, resume, resumeRepo),
		Export: service.NewExportService(review),
	}, nil
}

// Close закрывает хранилище
func (a *App) Close() error {
	return a.Store.Close()
}

// OpenStore подключает хранилище, выбранное в storage.driver, и применяет миграции
func OpenStore(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Println("[App] Хранилище в памяти: прогресс не сохранится после выхода")
		return memory.NewKVStore(), nil

	case config.StorageDriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		if err := database.MigrateSQLite(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Printf("[App] Хранилище SQLite: %s", cfg.SQLite.Path)
		return sqliteRepo.NewKVStore(db)

	case config.StorageDriverPostgres:
		db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
		if err != nil {
			return nil, err
		}
		if err := database.MigratePostgres(db); err != nil {
			if sqlDB, dbErr := database.GetSQLDB(db); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, err
		}
		log.Printf("[App] Хранилище PostgreSQL: %s/%s", cfg.Database.Host, cfg.Database.DBName)
		return pgRepo.NewKVStore(db)

	case config.StorageDriverRedis:
		client, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Printf("[App] Хранилище Redis (%s)", cfg.Redis.Mode)
		return redisRepo.NewKVStore(client)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
