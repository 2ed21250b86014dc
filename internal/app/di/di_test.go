package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/platform/cache"
	"recipebox/internal/platform/config"
	"recipebox/internal/platform/jsonstore"
)

func TestOpenStorage_File(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		StorageDriver: config.DriverFile,
		RecipesFile:   filepath.Join(dir, "recipes.json"),
		UsersFile:     filepath.Join(dir, "users.json"),
		GroupsFile:    filepath.Join(dir, "groups.json"),
	}

	s, err := OpenStorage(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })

	require.IsType(t, &jsonstore.FileBackend{}, s.Recipes)
	assert.Equal(t, cfg.RecipesFile, s.Recipes.(*jsonstore.FileBackend).Path())
	assert.Equal(t, cfg.UsersFile, s.Users.(*jsonstore.FileBackend).Path())
	assert.Equal(t, cfg.GroupsFile, s.Groups.(*jsonstore.FileBackend).Path())

	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpenStorage_SQLite(t *testing.T) {
	cfg := &config.Config{
		StorageDriver: config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "recipebox.db"),
	}

	s, err := OpenStorage(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })

	ctx := context.Background()
	require.NoError(t, s.Users.Write(ctx, []byte(`[{"id":1}]`)))

	data, exists, err := s.Users.Read(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.JSONEq(t, `[{"id":1}]`, string(data))

	// collections are separate rows
	_, exists, err = s.Recipes.Read(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, s.Ping(ctx))
	_, err = os.Stat(cfg.SQLitePath)
	assert.NoError(t, err)
}

func TestOpenStorage_Memory(t *testing.T) {
	s, err := OpenStorage(&config.Config{StorageDriver: config.DriverMemory})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })

	require.IsType(t, &jsonstore.MemoryBackend{}, s.Recipes)
	require.IsType(t, &jsonstore.MemoryBackend{}, s.Users)
	require.IsType(t, &jsonstore.MemoryBackend{}, s.Groups)

	ctx := context.Background()
	require.NoError(t, s.Users.Write(ctx, []byte(`[{"id":1}]`)))
	_, exists, err := s.Recipes.Read(ctx)
	require.NoError(t, err)
	assert.False(t, exists, "collections must not share a document")
	assert.NoError(t, s.Ping(ctx))
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := OpenStorage(&config.Config{StorageDriver: "mongo"})
	assert.ErrorContains(t, err, "mongo")
}

func TestNewRecipeRepository(t *testing.T) {
	backend := jsonstore.NewMemoryBackend()

	plain := NewRecipeRepository(backend, nil, time.Minute)
	_, isCached := plain.(*cache.CachingRecipeRepository)
	assert.False(t, isCached)

	rdb, _ := redismock.NewClientMock()
	cached := NewRecipeRepository(backend, rdb, time.Minute)
	_, isCached = cached.(*cache.CachingRecipeRepository)
	assert.True(t, isCached)
}

func TestJWTSecret(t *testing.T) {
	got, err := JWTSecret("configured")
	require.NoError(t, err)
	assert.Equal(t, "configured", got)

	a, err := JWTSecret("")
	require.NoError(t, err)
	b, err := JWTSecret("")
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
