package memory

import (
	"sync"

	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
)

// KVStore - хранилище ключ-значение в памяти процесса.
// Данные теряются при перезапуске.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStore создает пустое хранилище
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

// Get возвращает значение по ключу
func (s *KVStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return value, nil
}

// Set сохраняет значение
func (s *KVStore) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Delete удаляет ключ
func (s *KVStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Close ничего не делает
func (s *KVStore) Close() error { return nil }
