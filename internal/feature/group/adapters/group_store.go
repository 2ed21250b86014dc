// Package adapters provides the repository implementation for the group feature.
package adapters

import (
	"context"

	"recipebox/internal/feature/group/domain/entity"
	"recipebox/internal/feature/group/usecase"
	"recipebox/internal/platform/jsonstore"
)

// CollectionName is the name of the group document in storage.
const CollectionName = "groups"

// groupStore implements usecase.GroupRepository on top of a JSON collection.
type groupStore struct {
	coll *jsonstore.Collection[entity.Group]
}

// Compile-time check that groupStore implements GroupRepository.
var _ usecase.GroupRepository = (*groupStore)(nil)

// NewGroupStore returns a repository reading groups through backend.
func NewGroupStore(backend jsonstore.Backend) *groupStore {
	return &groupStore{coll: jsonstore.NewCollection[entity.Group](CollectionName, backend)}
}

// List loads every group.
func (s *groupStore) List(ctx context.Context) ([]entity.Group, error) {
	return s.coll.LoadAll(ctx)
}
