package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/feature/recipe/domain/entity"
)

// mockRecipeRepository is a test implementation of RecipeRepository.
type mockRecipeRepository struct {
	listFn   func(ctx context.Context) ([]entity.Recipe, error)
	updateFn func(ctx context.Context, fn func([]entity.Recipe) ([]entity.Recipe, error)) ([]entity.Recipe, error)
	listed   int
}

func (m *mockRecipeRepository) List(ctx context.Context) ([]entity.Recipe, error) {
	m.listed++
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []entity.Recipe{}, nil
}

func (m *mockRecipeRepository) Update(ctx context.Context, fn func([]entity.Recipe) ([]entity.Recipe, error)) ([]entity.Recipe, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, fn)
	}
	return fn(nil)
}

var sample = []entity.Recipe{{
	ID: "r1", Name: "Soup", Ingredients: json.RawMessage(`["water"]`), Steps: json.RawMessage(`["boil"]`),
	People: 1, Rating: 5, Image: entity.DefaultImage, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
}}

// assertSameRecipes compares recipes by their JSON form, which is what the
// cache stores.
func assertSameRecipes(t *testing.T, want, got []entity.Recipe) {
	t.Helper()
	w, err := json.Marshal(want)
	require.NoError(t, err)
	g, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(w), string(g))
}

func sampleBytes(t *testing.T) []byte {
	t.Helper()
	b, err := json.Marshal(sample)
	require.NoError(t, err)
	return b
}

// TestNewCachingRecipeRepository_Defaults verifies ttl and namespace defaults.
func TestNewCachingRecipeRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "recipes"},
		{"negative ttl uses default", -1 * time.Minute, "", 5 * time.Minute, "recipes"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingRecipeRepository(nil, tt.ttl, &mockRecipeRepository{}, tt.namespace)
			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

func TestCachingRecipeRepository_List_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockRecipeRepository{listFn: func(ctx context.Context) ([]entity.Recipe, error) { return sample, nil }}
	repo := NewCachingRecipeRepository(nil, time.Minute, inner, "")

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assertSameRecipes(t, sample, got)
	assert.Equal(t, 1, inner.listed)
}

func TestCachingRecipeRepository_List_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("recipes:all").SetVal(string(sampleBytes(t)))

	inner := &mockRecipeRepository{}
	repo := NewCachingRecipeRepository(rdb, time.Minute, inner, "")

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assertSameRecipes(t, sample, got)
	assert.Equal(t, 0, inner.listed, "storage must not be read on a hit")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingRecipeRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("recipes:all").RedisNil()
	mock.ExpectSet("recipes:all", sampleBytes(t), 2*time.Minute).SetVal("OK")

	inner := &mockRecipeRepository{listFn: func(ctx context.Context) ([]entity.Recipe, error) { return sample, nil }}
	repo := NewCachingRecipeRepository(rdb, 2*time.Minute, inner, "")

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assertSameRecipes(t, sample, got)
	assert.Equal(t, 1, inner.listed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingRecipeRepository_List_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("recipes:all").SetVal("{not json")
	mock.ExpectDel("recipes:all").SetVal(1)
	mock.ExpectSet("recipes:all", sampleBytes(t), time.Minute).SetVal("OK")

	inner := &mockRecipeRepository{listFn: func(ctx context.Context) ([]entity.Recipe, error) { return sample, nil }}
	repo := NewCachingRecipeRepository(rdb, time.Minute, inner, "")

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assertSameRecipes(t, sample, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingRecipeRepository_List_RedisDown(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("recipes:all").SetErr(errors.New("connection refused"))
	mock.ExpectSet("recipes:all", sampleBytes(t), time.Minute).SetErr(errors.New("connection refused"))

	inner := &mockRecipeRepository{listFn: func(ctx context.Context) ([]entity.Recipe, error) { return sample, nil }}
	repo := NewCachingRecipeRepository(rdb, time.Minute, inner, "")

	got, err := repo.List(context.Background())
	require.NoError(t, err, "cache failures never fail reads")
	assertSameRecipes(t, sample, got)
}

func TestCachingRecipeRepository_List_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("recipes:all").RedisNil()

	innerErr := errors.New("corrupt document")
	inner := &mockRecipeRepository{listFn: func(ctx context.Context) ([]entity.Recipe, error) { return nil, innerErr }}
	repo := NewCachingRecipeRepository(rdb, time.Minute, inner, "")

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, innerErr)
	assert.NoError(t, mock.ExpectationsWereMet(), "nothing is cached on error")
}

func TestCachingRecipeRepository_Update_Invalidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		innerErr error
		delErr   error
	}{
		{"successful write", nil, nil},
		{"failed write still drops the key", errors.New("disk full"), nil},
		{"invalidation failure is ignored", nil, errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rdb, mock := redismock.NewClientMock()
			defer func() { _ = rdb.Close() }()

			if tt.delErr != nil {
				mock.ExpectDel("book:all").SetErr(tt.delErr)
			} else {
				mock.ExpectDel("book:all").SetVal(1)
			}

			inner := &mockRecipeRepository{updateFn: func(ctx context.Context, fn func([]entity.Recipe) ([]entity.Recipe, error)) ([]entity.Recipe, error) {
				if tt.innerErr != nil {
					return nil, tt.innerErr
				}
				return fn(sample)
			}}
			repo := NewCachingRecipeRepository(rdb, time.Minute, inner, "book")

			out, err := repo.Update(context.Background(), func(cur []entity.Recipe) ([]entity.Recipe, error) {
				return cur[:0], nil
			})
			if tt.innerErr != nil {
				assert.ErrorIs(t, err, tt.innerErr)
			} else {
				assert.NoError(t, err)
				assert.Empty(t, out)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
