// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port string

	DataDir     string
	RecipesFile string
	UsersFile   string
	GroupsFile  string

	StorageDriver string
	SQLitePath    string
	DB            DBConfig

	Redis    RedisConfig
	CacheTTL time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	// LoginRateLimit caps login and signup attempts per client IP per
	// LoginRateWindow. Zero disables the limit.
	LoginRateLimit  int
	LoginRateWindow time.Duration

	CORSOrigins []string
	LogLevel    string
	LogFormat   string
	GinMode     string
}

// DBConfig holds the postgres connection settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig holds the optional cache connection settings. An empty Host
// disables caching.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// LoadDotEnv loads .env from the working directory when present. Variables
// already set in the environment win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	dataDir := getEnv("DATA_DIR", "./data")

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DataDir:       dataDir,
		RecipesFile:   getEnv("RECIPES_FILE", filepath.Join(dataDir, "recipes.json")),
		UsersFile:     getEnv("USERS_FILE", filepath.Join(dataDir, "users.json")),
		GroupsFile:    getEnv("GROUPS_FILE", filepath.Join(dataDir, "groups.json")),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverFile)),
		SQLitePath:    getEnv("SQLITE_PATH", filepath.Join(dataDir, "recipebox.db")),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "recipebox"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		GinMode:     getEnv("GIN_MODE", "release"),
	}

	var err error
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.LoginRateLimit, err = getInt("LOGIN_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.LoginRateWindow, err = getDuration("LOGIN_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	switch cfg.StorageDriver {
	case DriverFile, DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, raw)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
