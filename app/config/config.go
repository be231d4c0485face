// Package config reads helpboard settings from the environment, after
// loading a .env file when one exists.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"helpboard/app/storage"
)

const (
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Backend       string
	DataDir       string
	Addr          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	LogLevel      string
	BackupDir     string
}

// Load reads .env files (missing files are ignored) and then the
// HELPBOARD_* variables. Variables already set in the environment win over
// .env entries.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	db, err := strconv.Atoi(envOrDefault("HELPBOARD_REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid HELPBOARD_REDIS_DB: %w", err)
	}

	cfg := &Config{
		Backend:       strings.ToLower(envOrDefault("HELPBOARD_BACKEND", BackendBadger)),
		DataDir:       envOrDefault("HELPBOARD_DATA_DIR", "data/badger"),
		Addr:          envOrDefault("HELPBOARD_ADDR", ":8080"),
		RedisAddr:     envOrDefault("HELPBOARD_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("HELPBOARD_REDIS_PASSWORD"),
		RedisDB:       db,
		RedisPrefix:   envOrDefault("HELPBOARD_REDIS_PREFIX", "helpboard:"),
		LogLevel:      envOrDefault("HELPBOARD_LOG_LEVEL", "info"),
		BackupDir:     envOrDefault("HELPBOARD_BACKUP_DIR", "data/backups"),
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendBadger, BackendRedis, BackendMemory:
		return nil
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
}

// OpenBackend connects the configured storage backend.
func (c *Config) OpenBackend() (storage.Backend, error) {
	switch c.Backend {
	case BackendRedis:
		backend, err := storage.ConnectRedis(c.RedisAddr, c.RedisPassword, c.RedisDB, c.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case BackendMemory:
		backend, err := storage.OpenBadgerInMemory()
		if err != nil {
			return nil, err
		}
		return backend, nil
	case BackendBadger:
		backend, err := storage.OpenBadger(c.DataDir)
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

// Logger builds the process logger at the configured level.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.Level()}))
}

// Level parses LogLevel. Unknown values fall back to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
