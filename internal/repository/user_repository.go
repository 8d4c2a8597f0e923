package repository

import (
	"context"
	"strings"

	"memberdesk/internal/errors"
	"memberdesk/internal/model"
	"memberdesk/internal/store"
)

// UserRepository defines record-level persistence operations over the
// whole-collection store. Lookups are linear scans; the collection is a
// single JSON array, not an indexed table.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Append(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Remove(ctx context.Context, id string) error
}

type userRepository struct {
	store store.Store
}

// NewUserRepository builds a store-backed repository.
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	return r.store.GetAll(ctx)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, errors.ErrUserNotFound
}

// FindByEmail matches case-insensitively. Records are written by loosely
// validated clients, so the comparison folds case on both sides.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	users, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.ToLower(users[i].Email) == needle {
			return &users[i], nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (r *userRepository) Append(ctx context.Context, user *model.User) error {
	users, err := r.store.GetAll(ctx)
	if err != nil {
		return err
	}
	users = append(users, *user)
	return r.store.ReplaceAll(ctx, users)
}

// Update replaces the record matching user.ID and persists the full
// collection. Missing ids surface as ErrUserNotFound instead of silently
// writing nothing.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	users, err := r.store.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			return r.store.ReplaceAll(ctx, users)
		}
	}
	return errors.ErrUserNotFound
}

func (r *userRepository) Remove(ctx context.Context, id string) error {
	users, err := r.store.GetAll(ctx)
	if err != nil {
		return err
	}
	remaining := make([]model.User, 0, len(users))
	found := false
	for _, u := range users {
		if u.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, u)
	}
	if !found {
		return errors.ErrUserNotFound
	}
	return r.store.ReplaceAll(ctx, remaining)
}
