package config

import (
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string
	LogLevel        string
	ListenAddr      string
	StorageBackend  string
	PostgresDSN     string
	SQLitePath      string
	RecordsFile     string
	MappingsFile    string
	AuthToken       string
	AuthServiceURL  string
	WebhookURL      string
	ImportChunkSize int
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:             getEnv("APP_ENV", "development"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			ListenAddr:      getEnv("LISTEN_ADDR", ":8088"),
			StorageBackend:  getEnv("STORAGE_BACKEND", "file"),
			PostgresDSN:     getEnv("POSTGRES_DSN", ""),
			SQLitePath:      getEnv("SQLITE_PATH", "data/aurax.db"),
			RecordsFile:     getEnv("RECORDS_FILE", "data/health_records.json"),
			MappingsFile:    getEnv("MAPPINGS_FILE", "data/csv_mappings.json"),
			AuthToken:       getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
			AuthServiceURL:  getEnv("AUTH_SERVICE_URL", ""),
			WebhookURL:      getEnv("IMPORT_WEBHOOK_URL", ""),
			ImportChunkSize: getEnvInt("IMPORT_CHUNK_SIZE", 50),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case "file":
		if c.RecordsFile == "" {
			return errors.New("RECORDS_FILE is required when STORAGE_BACKEND=file")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, postgres, sqlite")
	}
	if c.MappingsFile == "" {
		return errors.New("MAPPINGS_FILE must be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.ImportChunkSize < 1 {
		return errors.New("IMPORT_CHUNK_SIZE must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
