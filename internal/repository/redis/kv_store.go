package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
)

// KVStore реализует repository.KeyValueStore поверх Redis.
// Ключи хранятся без срока жизни.
type KVStore struct {
	client redis.UniversalClient
	ctx    context.Context
}

// NewKVStore создает хранилище и возвращает ошибку, если клиент не задан
func NewKVStore(client redis.UniversalClient) (*KVStore, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for KVStore")
	}
	return &KVStore{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// Get получает значение по ключу
func (s *KVStore) Get(key string) (string, error) {
	val, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return val, nil
}

// Set сохраняет значение без истечения
func (s *KVStore) Set(key string, value string) error {
	return s.client.Set(s.ctx, key, value, 0).Err()
}

// Delete удаляет ключ
func (s *KVStore) Delete(key string) error {
	return s.client.Del(s.ctx, key).Err()
}

// Close закрывает клиент
func (s *KVStore) Close() error {
	return s.client.Close()
}
