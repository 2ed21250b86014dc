package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATA_DIR", "RECIPES_FILE", "USERS_FILE", "GROUPS_FILE",
		"STORAGE_DRIVER", "SQLITE_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSLMODE", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "CACHE_TTL",
		"JWT_SECRET", "JWT_TTL", "LOGIN_RATE_LIMIT", "LOGIN_RATE_WINDOW", "CORS_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "GIN_MODE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, filepath.Join("./data", "recipes.json"), cfg.RecipesFile)
	assert.Equal(t, filepath.Join("./data", "users.json"), cfg.UsersFile)
	assert.Equal(t, filepath.Join("./data", "groups.json"), cfg.GroupsFile)
	assert.Equal(t, DriverFile, cfg.StorageDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.Equal(t, time.Minute, cfg.LoginRateWindow)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_DIR", "/srv/data")
	t.Setenv("USERS_FILE", "/etc/recipebox/users.json")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("LOGIN_RATE_LIMIT", "0")
	t.Setenv("CORS_ORIGINS", " https://a.example , https://b.example ,")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, filepath.Join("/srv/data", "recipes.json"), cfg.RecipesFile)
	assert.Equal(t, "/etc/recipebox/users.json", cfg.UsersFile)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "pw", cfg.DB.Password)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Zero(t, cfg.LoginRateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MemoryDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "STORAGE_DRIVER", "mongo"},
		{"bad cache ttl", "CACHE_TTL", "five minutes"},
		{"negative jwt ttl", "JWT_TTL", "-1h"},
		{"bad login limit", "LOGIN_RATE_LIMIT", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
