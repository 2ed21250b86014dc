package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"recipebox/internal/feature/user/domain/entity"
	"recipebox/internal/shared/userid"
)

// dummyHash is compared against when the email is unknown so that login takes
// the same time whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the user collection.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// List returns every stored user in insertion order.
	List(ctx context.Context) ([]entity.User, error)

	// Update runs fn over the current users and persists its result.
	// Calls are serialized; an error from fn aborts without writing.
	Update(ctx context.Context, fn func([]entity.User) ([]entity.User, error)) ([]entity.User, error)
}

// GroupMembership resolves the groups users belong to.
type GroupMembership interface {
	GroupIDsForUsers(ctx context.Context, ids []userid.ID) (map[userid.ID][]json.RawMessage, error)
}

// TokenGenerator issues access tokens after a successful login.
type TokenGenerator interface {
	GenerateToken(userID userid.ID, email string) (string, error)
}

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Image    string
}

// UserUsecase implements accounts and authentication.
// Users returned from it never carry a password hash.
type UserUsecase struct {
	repo     UserRepository
	groups   GroupMembership
	tokens   TokenGenerator
	hashCost int
}

// NewUserUsecase creates a new UserUsecase.
func NewUserUsecase(repo UserRepository, groups GroupMembership, tokens TokenGenerator) *UserUsecase {
	return &UserUsecase{
		repo:     repo,
		groups:   groups,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

// ListAll returns every user with its current groups.
func (u *UserUsecase) ListAll(ctx context.Context) ([]entity.User, error) {
	users, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return u.present(ctx, users)
}

// GetByID returns the user with the given id.
func (u *UserUsecase) GetByID(ctx context.Context, id userid.ID) (*entity.User, error) {
	users, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	i := indexByID(users, id)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	out, err := u.present(ctx, users[i:i+1])
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Exists reports whether a user with the given id is registered.
func (u *UserUsecase) Exists(ctx context.Context, id userid.ID) (bool, error) {
	users, err := u.repo.List(ctx)
	if err != nil {
		return false, err
	}
	return indexByID(users, id) >= 0, nil
}

// Signup registers a new user. Emails are compared exactly.
func (u *UserUsecase) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	hashed, err := u.hash(in.Password)
	if err != nil {
		return nil, err
	}

	var created entity.User
	_, err = u.repo.Update(ctx, func(cur []entity.User) ([]entity.User, error) {
		if indexByEmail(cur, in.Email) >= 0 {
			return nil, ErrEmailAlreadyExists
		}
		ids := make([]userid.ID, len(cur))
		for i := range cur {
			ids[i] = cur[i].ID
		}
		created = entity.User{
			ID:       userid.Next(ids),
			Name:     in.Name,
			Email:    in.Email,
			Password: string(hashed),
			Image:    in.Image,
			Groups:   []json.RawMessage{},
		}
		if created.Image == "" {
			created.Image = entity.DefaultImage
		}
		next := make([]entity.User, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, created), nil
	})
	if err != nil {
		return nil, err
	}

	created.Password = ""
	return &created, nil
}

// Login verifies the credentials and returns the user with a signed access
// token. Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (u *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	users, err := u.repo.List(ctx)
	if err != nil {
		return nil, "", err
	}

	i := indexByEmail(users, email)
	passwordHash := dummyHash
	if i >= 0 {
		passwordHash = users[i].Password
	}
	// always compare so both failure paths cost the same
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if i < 0 || compareErr != nil {
		return nil, "", ErrInvalidCredentials
	}

	out, err := u.present(ctx, users[i:i+1])
	if err != nil {
		return nil, "", err
	}
	token, err := u.tokens.GenerateToken(out[0].ID, out[0].Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return &out[0], token, nil
}

// ChangePassword replaces the password of user id after verifying current.
func (u *UserUsecase) ChangePassword(ctx context.Context, id userid.ID, current, newPassword string) error {
	hashed, err := u.hash(newPassword)
	if err != nil {
		return err
	}

	_, err = u.repo.Update(ctx, func(cur []entity.User) ([]entity.User, error) {
		i := indexByID(cur, id)
		if i < 0 {
			return nil, ErrUserNotFound
		}
		if bcrypt.CompareHashAndPassword([]byte(cur[i].Password), []byte(current)) != nil {
			return nil, ErrInvalidCredentials
		}
		next := make([]entity.User, len(cur))
		copy(next, cur)
		next[i].Password = string(hashed)
		return next, nil
	})
	return err
}

func (u *UserUsecase) hash(password string) ([]byte, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hashed, nil
}

// present copies users without their password hashes and with their groups
// resolved from the group collection.
func (u *UserUsecase) present(ctx context.Context, users []entity.User) ([]entity.User, error) {
	ids := make([]userid.ID, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	membership, err := u.groups.GroupIDsForUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve groups: %w", err)
	}

	out := make([]entity.User, len(users))
	for i, usr := range users {
		usr.Password = ""
		usr.Groups = membership[usr.ID]
		if usr.Groups == nil {
			usr.Groups = []json.RawMessage{}
		}
		out[i] = usr
	}
	return out, nil
}

func indexByID(users []entity.User, id userid.ID) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func indexByEmail(users []entity.User, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}
