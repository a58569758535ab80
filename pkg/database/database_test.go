package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woogihooni/exmJo/internal/config"
)

func TestRedisOptions(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       config.RedisConfig
		wantAddrs []string
		wantErr   bool
	}{
		{"одиночный addr", config.RedisConfig{Addr: "localhost:6379"}, []string{"localhost:6379"}, false},
		{"addrs важнее addr", config.RedisConfig{Addrs: []string{"a:1", "b:2"}, Addr: "c:3", Mode: "cluster"}, []string{"a:1", "b:2"}, false},
		{"нет адреса", config.RedisConfig{}, nil, true},
		{"sentinel без мастера", config.RedisConfig{Addr: "a:1", Mode: "sentinel"}, nil, true},
		{"неизвестный режим", config.RedisConfig{Addr: "a:1", Mode: "ring"}, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := redisOptions(tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAddrs, opts.Addrs)
		})
	}
}

func TestRedisOptions_Backoff(t *testing.T) {
	opts, err := redisOptions(config.RedisConfig{
		Addr: "a:1", Mode: "sentinel", MasterName: "mymaster",
		MaxRetries: 3, MinRetryBackoff: 10, MaxRetryBackoff: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, "mymaster", opts.MasterName)
	assert.Equal(t, 3, opts.MaxRetries)
	assert.Equal(t, 10*time.Millisecond, opts.MinRetryBackoff)
	assert.Equal(t, 100*time.Millisecond, opts.MaxRetryBackoff)
}

func TestSQLite_OpenAndMigrate(t *testing.T) {
	// Arrange
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.db")

	db, err := NewSQLiteDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	// Act: повторная миграция не должна быть ошибкой
	require.NoError(t, MigrateSQLite(db))
	require.NoError(t, MigrateSQLite(db))

	// Assert
	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_entries`).Scan(&count)
	require.NoError(t, err, "Таблица kv_entries должна существовать после миграций")
	assert.Equal(t, 0, count)
}

func TestSQLite_ForceVersion(t *testing.T) {
	ctx := context.Background()
	db, err := NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, MigrateSQLite(db))

	require.NoError(t, ForceSQLiteVersion(db, 1))

	var version int
	var dirty bool
	err = db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.False(t, dirty)
}
