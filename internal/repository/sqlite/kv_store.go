package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
)

// KVStore реализует repository.KeyValueStore поверх локального файла SQLite.
// Схема создается миграциями database.MigrateSQLite.
type KVStore struct {
	db  *sql.DB
	ctx context.Context
}

// NewKVStore создает хранилище на открытом соединении
func NewKVStore(db *sql.DB) (*KVStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sql DB cannot be nil for KVStore")
	}
	return &KVStore{db: db, ctx: context.Background()}, nil
}

// Get возвращает значение по ключу
func (s *KVStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(s.ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("sqlite get %q: %w", key, err)
	}
	return value, nil
}

// Set сохраняет значение
func (s *KVStore) Set(key string, value string) error {
	_, err := s.db.ExecContext(s.ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("sqlite set %q: %w", key, err)
	}
	return nil
}

// Delete удаляет ключ
func (s *KVStore) Delete(key string) error {
	if _, err := s.db.ExecContext(s.ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite delete %q: %w", key, err)
	}
	return nil
}

// Close закрывает соединение
func (s *KVStore) Close() error {
	return s.db.Close()
}
