package repository

// KeyValueStore - долговременное хранилище строк по строковым ключам.
// Get возвращает apperrors.ErrNotFound, если ключа нет.
// Запись работает по принципу "последний записавший побеждает".
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Delete(key string) error
	Close() error
}
