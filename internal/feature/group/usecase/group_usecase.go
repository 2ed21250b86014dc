package usecase

import (
	"context"
	"encoding/json"

	"recipebox/internal/feature/group/domain/entity"
	"recipebox/internal/shared/userid"
)

// GroupRepository abstracts the read-only group collection.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type GroupRepository interface {
	List(ctx context.Context) ([]entity.Group, error)
}

// GroupUsecase answers group and membership queries.
type GroupUsecase struct {
	repo GroupRepository
}

// NewGroupUsecase creates a new GroupUsecase with the given repository.
func NewGroupUsecase(repo GroupRepository) *GroupUsecase {
	return &GroupUsecase{repo: repo}
}

// ListAll returns every group as stored.
func (u *GroupUsecase) ListAll(ctx context.Context) ([]entity.Group, error) {
	groups, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []entity.Group{}
	}
	return groups, nil
}

// ListForUser returns the groups whose member list contains rawUserID.
func (u *GroupUsecase) ListForUser(ctx context.Context, rawUserID string) ([]entity.Group, error) {
	id, err := userid.Parse(rawUserID)
	if err != nil {
		return nil, ErrInvalidUserID
	}
	return u.groupsOf(ctx, id)
}

// GroupIDsForUsers maps each of ids to the ids of the groups it belongs to.
// Every requested user gets an entry, empty when it has no groups. Groups
// without an id are skipped.
func (u *GroupUsecase) GroupIDsForUsers(ctx context.Context, ids []userid.ID) (map[userid.ID][]json.RawMessage, error) {
	groups, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[userid.ID][]json.RawMessage, len(ids))
	for _, id := range ids {
		member := make([]json.RawMessage, 0)
		for _, g := range groups {
			if gid, ok := g.ID(); ok && g.HasMember(id) {
				member = append(member, gid)
			}
		}
		out[id] = member
	}
	return out, nil
}

func (u *GroupUsecase) groupsOf(ctx context.Context, id userid.ID) ([]entity.Group, error) {
	groups, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Group, 0)
	for _, g := range groups {
		if g.HasMember(id) {
			out = append(out, g)
		}
	}
	return out, nil
}
