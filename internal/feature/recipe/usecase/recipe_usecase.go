package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"recipebox/internal/feature/recipe/domain/entity"
	"recipebox/internal/shared/userid"
)

const (
	defaultPeople = 1
	defaultRating = 5
)

// RecipeRepository abstracts the recipe collection.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type RecipeRepository interface {
	// List returns every stored recipe in insertion order.
	List(ctx context.Context) ([]entity.Recipe, error)

	// Update runs fn over the current recipes and persists its result.
	// Calls are serialized; an error from fn aborts without writing.
	Update(ctx context.Context, fn func([]entity.Recipe) ([]entity.Recipe, error)) ([]entity.Recipe, error)
}

// CreateInput carries the client supplied fields of a new recipe. Nil
// pointers mean the field was omitted.
type CreateInput struct {
	Name        string
	Description string
	Ingredients json.RawMessage
	Steps       json.RawMessage
	Image       string
	Time        string
	People      *int
	Rating      *float64
	UploaderID  *userid.ID
}

// RecipeUsecase provides business logic for recipe operations.
type RecipeUsecase struct {
	repo  RecipeRepository
	now   func() time.Time
	newID func() string
}

// NewRecipeUsecase creates a new RecipeUsecase with the given repository.
func NewRecipeUsecase(repo RecipeRepository) *RecipeUsecase {
	return &RecipeUsecase{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// ListAll returns every recipe. The result is never nil.
func (u *RecipeUsecase) ListAll(ctx context.Context) ([]entity.Recipe, error) {
	recipes, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []entity.Recipe{}
	}
	return recipes, nil
}

// Search returns recipes whose name or description contains query, ignoring
// case, in storage order. An empty query matches every recipe.
func (u *RecipeUsecase) Search(ctx context.Context, query string) ([]entity.Recipe, error) {
	recipes, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := make([]entity.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.Matches(q) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Get returns the recipe with the given ID.
func (u *RecipeUsecase) Get(ctx context.Context, id string) (*entity.Recipe, error) {
	recipes, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(recipes, id); i >= 0 {
		r := recipes[i]
		return &r, nil
	}
	return nil, ErrRecipeNotFound
}

// ListByUploader returns the recipes uploaded by the given user.
func (u *RecipeUsecase) ListByUploader(ctx context.Context, uploader userid.ID) ([]entity.Recipe, error) {
	recipes, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Recipe, 0)
	for _, r := range recipes {
		if r.UploaderID != nil && *r.UploaderID == uploader {
			out = append(out, r)
		}
	}
	return out, nil
}

// Create validates in, fills in defaults and appends the new recipe.
func (u *RecipeUsecase) Create(ctx context.Context, in CreateInput) (*entity.Recipe, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !present(in.Ingredients) || !present(in.Steps) {
		return nil, ErrMissingFields
	}

	r := entity.Recipe{
		ID:          u.newID(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Ingredients: in.Ingredients,
		Steps:       in.Steps,
		Time:        in.Time,
		People:      defaultPeople,
		Rating:      defaultRating,
		Image:       in.Image,
		UploaderID:  in.UploaderID,
		CreatedAt:   u.now().UTC(),
	}
	if in.People != nil {
		r.People = *in.People
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if r.Image == "" {
		r.Image = entity.DefaultImage
	}

	if _, err := u.repo.Update(ctx, func(cur []entity.Recipe) ([]entity.Recipe, error) {
		return appendRecipe(cur, r), nil
	}); err != nil {
		return nil, err
	}
	return &r, nil
}

// Delete removes the recipe with the given ID on behalf of requester. Only the
// uploader may delete a recipe; a nil requester or an ownerless recipe is
// always refused.
func (u *RecipeUsecase) Delete(ctx context.Context, id string, requester *userid.ID) error {
	_, err := u.repo.Update(ctx, func(cur []entity.Recipe) ([]entity.Recipe, error) {
		return removeRecipe(cur, id, requester)
	})
	return err
}

// appendRecipe returns a new slice with r at the end.
func appendRecipe(cur []entity.Recipe, r entity.Recipe) []entity.Recipe {
	next := make([]entity.Recipe, 0, len(cur)+1)
	next = append(next, cur...)
	return append(next, r)
}

// removeRecipe returns a new slice without the recipe id, after checking that
// requester owns it.
func removeRecipe(cur []entity.Recipe, id string, requester *userid.ID) ([]entity.Recipe, error) {
	i := indexOf(cur, id)
	if i < 0 {
		return nil, ErrRecipeNotFound
	}
	if !userid.Equal(cur[i].UploaderID, requester) {
		return nil, ErrNotOwner
	}
	next := make([]entity.Recipe, 0, len(cur)-1)
	next = append(next, cur[:i]...)
	return append(next, cur[i+1:]...), nil
}

func indexOf(recipes []entity.Recipe, id string) int {
	for i := range recipes {
		if recipes[i].ID == id {
			return i
		}
	}
	return -1
}

// present reports whether a JSON value was supplied and is not null.
func present(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) > 0 && !bytes.Equal(v, []byte("null"))
}
