// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"recipebox/internal/feature/recipe/domain/entity"
	"recipebox/internal/feature/recipe/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "recipes"
)

// CachingRecipeRepository decorates a RecipeRepository with Redis caching.
// The whole collection is cached under one key and dropped after every Update.
// A List racing an Update can repopulate the key with the older collection;
// ttl bounds how long that stale copy is served.
type CachingRecipeRepository struct {
	inner     usecase.RecipeRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that CachingRecipeRepository implements RecipeRepository.
var _ usecase.RecipeRepository = (*CachingRecipeRepository)(nil)

// NewCachingRecipeRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "recipes".
// A nil rdb disables caching.
func NewCachingRecipeRepository(rdb *redis.Client, ttl time.Duration, inner usecase.RecipeRepository, namespace string) *CachingRecipeRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingRecipeRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List returns the cached collection, loading and caching it on a miss.
func (c *CachingRecipeRepository) List(ctx context.Context) ([]entity.Recipe, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.cacheKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Recipe
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("recipe cache read failed", "key", key, "error", err)
	}

	// 2) Fallback to storage
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Update delegates to the inner repository and then drops the cached copy.
func (c *CachingRecipeRepository) Update(ctx context.Context, fn func([]entity.Recipe) ([]entity.Recipe, error)) ([]entity.Recipe, error) {
	out, err := c.inner.Update(ctx, fn)
	if c.rdb != nil {
		// Best effort: don't fail the write if cache deletion fails
		if delErr := c.rdb.Del(ctx, c.cacheKey()).Err(); delErr != nil {
			slog.Warn("recipe cache invalidation failed", "key", c.cacheKey(), "error", delErr)
		}
	}
	return out, err
}

func (c *CachingRecipeRepository) cacheKey() string {
	return c.namespace + ":all"
}
