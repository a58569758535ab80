package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Act: файла нет, окружение пустое
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "quiz_data.json", cfg.Bank.Path)
	assert.Equal(t, StorageDriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "exmjo.db", cfg.SQLite.Path)
	assert.Equal(t, "exmjo:", cfg.Storage.KeyPrefix)
	assert.Equal(t, ExportFormatText, cfg.Export.Format)
}

func TestLoad_FileAndEnv(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
bank:
  path: bank.xlsx
  sheet: Questions
storage:
  driver: redis
redis:
  addrs:
    - localhost:6379
export:
  format: CSV
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	t.Setenv("QUIZ_STORAGE_KEY_PREFIX", "test:")

	// Act
	cfg, err := Load(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "bank.xlsx", cfg.Bank.Path)
	assert.Equal(t, "Questions", cfg.Bank.Sheet)
	assert.Equal(t, StorageDriverRedis, cfg.Storage.Driver)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Redis.Addrs)
	assert.Equal(t, "test:", cfg.Storage.KeyPrefix, "Переменная окружения должна переопределять умолчание")
	assert.Equal(t, ExportFormatCSV, cfg.Export.Format, "Формат приводится к нижнему регистру")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Bank:    BankConfig{Path: "bank.json"},
			Storage: StorageConfig{Driver: StorageDriverMemory},
			Export:  ExportConfig{Format: ExportFormatText},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"memory валиден", func(c *Config) {}, false},
		{"нет банка", func(c *Config) { c.Bank.Path = "" }, true},
		{"неизвестный драйвер", func(c *Config) { c.Storage.Driver = "mongo" }, true},
		{"sqlite без пути", func(c *Config) { c.Storage.Driver = StorageDriverSQLite }, true},
		{"postgres без хоста", func(c *Config) { c.Storage.Driver = StorageDriverPostgres }, true},
		{"postgres полный", func(c *Config) {
			c.Storage.Driver = StorageDriverPostgres
			c.Database = DatabaseConfig{Host: "localhost", DBName: "quiz", User: "quiz"}
		}, false},
		{"redis без адреса", func(c *Config) { c.Storage.Driver = StorageDriverRedis }, true},
		{"redis с addr", func(c *Config) {
			c.Storage.Driver = StorageDriverRedis
			c.Redis.Addr = "localhost:6379"
		}, false},
		{"неизвестный формат", func(c *Config) { c.Export.Format = "pdf" }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_PostgresConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "db", SSLMode: "disable"}

	assert.Equal(t, "host=h port=5432 user=u password=p dbname=db sslmode=disable", d.PostgresConnectionString())
}
