// Package adapters provides the repository implementation for the recipe feature.
package adapters

import (
	"context"

	"recipebox/internal/feature/recipe/domain/entity"
	"recipebox/internal/feature/recipe/usecase"
	"recipebox/internal/platform/jsonstore"
)

// CollectionName is the name of the recipe document in storage.
const CollectionName = "recipes"

// recipeStore implements usecase.RecipeRepository on top of a JSON collection.
type recipeStore struct {
	coll *jsonstore.Collection[entity.Recipe]
}

// Compile-time check that recipeStore implements RecipeRepository.
var _ usecase.RecipeRepository = (*recipeStore)(nil)

// NewRecipeStore returns a repository persisting recipes through backend.
func NewRecipeStore(backend jsonstore.Backend) *recipeStore {
	return &recipeStore{coll: jsonstore.NewCollection[entity.Recipe](CollectionName, backend)}
}

// List loads every recipe.
func (s *recipeStore) List(ctx context.Context) ([]entity.Recipe, error) {
	return s.coll.LoadAll(ctx)
}

// Update applies fn under the collection lock and saves the result.
func (s *recipeStore) Update(ctx context.Context, fn func([]entity.Recipe) ([]entity.Recipe, error)) ([]entity.Recipe, error) {
	return s.coll.Update(ctx, fn)
}
