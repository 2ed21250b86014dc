package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	groupadapters "recipebox/internal/feature/group/adapters"
	grouphandler "recipebox/internal/feature/group/transport/handler"
	groupusecase "recipebox/internal/feature/group/usecase"
	recipeadapters "recipebox/internal/feature/recipe/adapters"
	recipehandler "recipebox/internal/feature/recipe/transport/handler"
	recipeusecase "recipebox/internal/feature/recipe/usecase"
	useradapters "recipebox/internal/feature/user/adapters"
	userhandler "recipebox/internal/feature/user/transport/handler"
	userusecase "recipebox/internal/feature/user/usecase"
	"recipebox/internal/platform/cache"
	"recipebox/internal/platform/jsonstore"
)

// Handlers groups the feature handlers mounted by the router.
type Handlers struct {
	Recipes *recipehandler.RecipeHandler
	Users   *userhandler.UserHandler
	Groups  *grouphandler.GroupHandler
}

// NewRecipeRepository creates a RecipeRepository implementation.
// If Redis is available, the store is wrapped in a read-through cache.
func NewRecipeRepository(backend jsonstore.Backend, rdb *redis.Client, ttl time.Duration) recipeusecase.RecipeRepository {
	store := recipeadapters.NewRecipeStore(backend)
	if rdb != nil {
		return cache.NewCachingRecipeRepository(rdb, ttl, store, recipeadapters.CollectionName)
	}
	return store
}

// NewHandlers wires repositories, usecases and handlers for every feature.
// rdb may be nil.
func NewHandlers(b Backends, rdb *redis.Client, cacheTTL time.Duration, tokens userusecase.TokenGenerator) *Handlers {
	// Repository
	recipeRepo := NewRecipeRepository(b.Recipes, rdb, cacheTTL)
	userRepo := useradapters.NewUserStore(b.Users)
	groupRepo := groupadapters.NewGroupStore(b.Groups)

	// Usecase
	groupUC := groupusecase.NewGroupUsecase(groupRepo)
	userUC := userusecase.NewUserUsecase(userRepo, groupUC, tokens)
	recipeUC := recipeusecase.NewRecipeUsecase(recipeRepo)

	// Handler
	return &Handlers{
		Recipes: recipehandler.NewRecipeHandler(recipeUC, userUC),
		Users:   userhandler.NewUserHandler(userUC),
		Groups:  grouphandler.NewGroupHandler(groupUC),
	}
}
