package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/woogihooni/exmJo/internal/domain/entity"
	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
)

// pgUndefinedTable - код ошибки PostgreSQL для отсутствующей таблицы
const pgUndefinedTable = "42P01"

// KVStore реализует repository.KeyValueStore поверх таблицы kv_entries
type KVStore struct {
	db  *gorm.DB
	ctx context.Context
}

// NewKVStore создает хранилище ключ-значение на PostgreSQL
func NewKVStore(db *gorm.DB) (*KVStore, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm DB cannot be nil for KVStore")
	}
	return &KVStore{db: db, ctx: context.Background()}, nil
}

// Get возвращает значение по ключу
func (s *KVStore) Get(key string) (string, error) {
	var row entity.KVEntry
	err := s.db.WithContext(s.ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", wrapPgError(err)
	}
	return row.Value, nil
}

// Set сохраняет значение (INSERT ... ON CONFLICT DO UPDATE)
func (s *KVStore) Set(key string, value string) error {
	now := time.Now()
	err := s.db.WithContext(s.ctx).Exec(`
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value, now).Error
	if err != nil {
		log.Printf("[PostgresKVStore] Ошибка записи ключа %s: %v", key, err)
		return wrapPgError(err)
	}
	return nil
}

// Delete удаляет ключ; отсутствие ключа ошибкой не считается
func (s *KVStore) Delete(key string) error {
	result := s.db.WithContext(s.ctx).Where("key = ?", key).Delete(&entity.KVEntry{})
	if result.Error != nil {
		return wrapPgError(result.Error)
	}
	return nil
}

// Close закрывает пул соединений
func (s *KVStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func wrapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return fmt.Errorf("kv_entries table is missing, run migrations first: %w", err)
	}
	return err
}
