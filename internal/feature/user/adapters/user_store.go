// Package adapters provides the repository implementation for the user feature.
package adapters

import (
	"context"

	"recipebox/internal/feature/user/domain/entity"
	"recipebox/internal/feature/user/usecase"
	"recipebox/internal/platform/jsonstore"
)

// CollectionName is the name of the user document in storage.
const CollectionName = "users"

// userStore implements usecase.UserRepository on top of a JSON collection.
type userStore struct {
	coll *jsonstore.Collection[entity.User]
}

// Compile-time check that userStore implements UserRepository.
var _ usecase.UserRepository = (*userStore)(nil)

// NewUserStore returns a repository persisting users through backend.
func NewUserStore(backend jsonstore.Backend) *userStore {
	return &userStore{coll: jsonstore.NewCollection[entity.User](CollectionName, backend)}
}

// List loads every user, password hashes included.
func (s *userStore) List(ctx context.Context) ([]entity.User, error) {
	return s.coll.LoadAll(ctx)
}

// Update applies fn under the collection lock and saves the result.
func (s *userStore) Update(ctx context.Context, fn func([]entity.User) ([]entity.User, error)) ([]entity.User, error) {
	return s.coll.Update(ctx, fn)
}
