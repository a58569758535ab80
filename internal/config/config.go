package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Драйверы хранилища прогресса
const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)

// Форматы экспорта заметок
const (
	ExportFormatText = "text"
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

// Config хранит все настройки приложения
type Config struct {
	Bank     BankConfig     `mapstructure:"bank"`
	Storage  StorageConfig  `mapstructure:"storage"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Export   ExportConfig   `mapstructure:"export"`
}

// BankConfig описывает источник банка вопросов
type BankConfig struct {
	// Path: путь к файлу .json или .xlsx
	Path string `mapstructure:"path"`
	// Sheet: лист XLSX; пусто - первый лист
	Sheet string `mapstructure:"sheet"`
}

// StorageConfig выбирает хранилище для отметок, заметок и позиции продолжения
type StorageConfig struct {
	Driver    string `mapstructure:"driver"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// SQLiteConfig содержит путь к локальной базе
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig содержит настройки подключения к Redis.
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	Mode       string   `mapstructure:"mode"`
	Addrs      []string `mapstructure:"addrs"`
	Addr       string   `mapstructure:"addr"`
	Password   string   `mapstructure:"password"`
	DB         int      `mapstructure:"db"`
	MasterName string   `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// ExportConfig задает формат и файл экспорта заметок
type ExportConfig struct {
	Format string `mapstructure:"format"`
	// Output: путь к файлу; пусто - стандартный вывод
	Output string `mapstructure:"output"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения.
// Отсутствующий файл не ошибка: используются окружение и значения по умолчанию.
func Load(configPath string) (*Config, error) {
	vip := viper.New()

	vip.SetDefault("bank.path", "quiz_data.json")
	vip.SetDefault("storage.driver", StorageDriverSQLite)
	vip.SetDefault("storage.key_prefix", "exmjo:")
	vip.SetDefault("sqlite.path", "exmjo.db")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("export.format", ExportFormatText)

	vip.BindEnv("bank.path", "QUIZ_BANK_PATH")
	vip.BindEnv("bank.sheet", "QUIZ_BANK_SHEET")
	vip.BindEnv("storage.driver", "QUIZ_STORAGE_DRIVER")
	vip.BindEnv("storage.key_prefix", "QUIZ_STORAGE_KEY_PREFIX")
	vip.BindEnv("sqlite.path", "QUIZ_SQLITE_PATH")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("export.format", "QUIZ_EXPORT_FORMAT")
	vip.BindEnv("export.output", "QUIZ_EXPORT_OUTPUT")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("[Config] Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("[Config] Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Export.Format = strings.ToLower(strings.TrimSpace(cfg.Export.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("[Config] Банк вопросов: %s, хранилище: %s", cfg.Bank.Path, cfg.Storage.Driver)
	return &cfg, nil
}

// Validate проверяет обязательные параметры выбранного хранилища
func (c *Config) Validate() error {
	if c.Bank.Path == "" {
		return fmt.Errorf("question bank path is required (check QUIZ_BANK_PATH env var)")
	}

	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required for sqlite storage (check QUIZ_SQLITE_PATH env var)")
		}
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case StorageDriverRedis:
		if len(c.Redis.Addrs) == 0 && c.Redis.Addr == "" {
			return fmt.Errorf("redis storage requires REDIS_ADDRS or REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unsupported storage driver: %q", c.Storage.Driver)
	}

	switch c.Export.Format {
	case ExportFormatText, ExportFormatCSV, ExportFormatXLSX:
	default:
		return fmt.Errorf("unsupported export format: %q", c.Export.Format)
	}
	return nil
}
