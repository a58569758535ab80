package postgres

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
	"github.com/woogihooni/exmJo/pkg/database"
)

func TestNewKVStore_NilDB(t *testing.T) {
	_, err := NewKVStore(nil)
	assert.Error(t, err)
}

// Требует PostgreSQL: TEST_POSTGRES_DSN="host=localhost user=... dbname=... sslmode=disable"
func TestKVStore_Integration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN не задан, пропускаем интеграционный тест PostgreSQL")
	}

	db, err := database.NewPostgresDB(dsn)
	require.NoError(t, err)
	require.NoError(t, database.MigratePostgres(db))

	store, err := NewKVStore(db)
	require.NoError(t, err)
	defer store.Close()

	key := "exmjo:test:kv"
	defer store.Delete(key)

	require.NoError(t, store.Set(key, "first"))
	require.NoError(t, store.Set(key, "second"))

	value, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "second", value)

	require.NoError(t, store.Delete(key))
	_, err = store.Get(key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
