package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers understood by directory.OpenStore.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Driver          string
	Namespace       string
	FingerprintMode string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	SQLiteDSN   string
	PostgresDSN string
}

type LogConfig struct {
	Dir   string
	Level string
	Color bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            normalizePort(getEnv("PORT", ":8080")),
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Store: StoreConfig{
			Driver:          strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
			Namespace:       getEnv("STORE_NAMESPACE", ""),
			FingerprintMode: strings.ToLower(getEnv("FINGERPRINT_MODE", "length")),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			SQLiteDSN:   getEnv("SQLITE_DSN", "file:oncampus.db?cache=shared"),
			PostgresDSN: getEnv("POSTGRES_DSN", ""),
		},
		Log: LogConfig{
			Dir:   logDir(getEnv("LOG_DIR", "logs")),
			Level: getEnv("LOG_LEVEL", "info"),
			Color: getEnvBool("LOG_COLOR", true),
		},
	}
}

// logDir treats "none" as "no log file".
func logDir(dir string) string {
	if strings.EqualFold(dir, "none") {
		return ""
	}
	return dir
}

// normalizePort accepts both "8080" and ":8080".
func normalizePort(port string) string {
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
