package service

import (
	"context"
	"fmt"

	"memberdesk/internal/errors"
	"memberdesk/internal/model"
	"memberdesk/internal/repository"
)

// LifecycleService applies administrator-driven status/role transitions and
// deletion. There are no automatic transitions.
type LifecycleService interface {
	// SetStatus moves the record to newStatus. Requesting the current value
	// returns ErrNoChange without touching the store.
	SetStatus(ctx context.Context, id string, newStatus model.Status) (*model.User, error)
	// SetRole assigns newRole with the same no-change semantics.
	SetRole(ctx context.Context, id string, newRole model.Role) (*model.User, error)
	// Remove deletes the record from the collection.
	Remove(ctx context.Context, id string) error
}

type lifecycleService struct {
	userRepo repository.UserRepository
}

// NewLifecycleService creates a new lifecycle service.
func NewLifecycleService(userRepo repository.UserRepository) LifecycleService {
	return &lifecycleService{userRepo: userRepo}
}

func (s *lifecycleService) SetStatus(ctx context.Context, id string, newStatus model.Status) (*model.User, error) {
	if !model.ValidStatus(newStatus) {
		return nil, errors.ErrInvalidStatus
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status == newStatus {
		return nil, errors.ErrNoChange
	}
	if !user.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", errors.ErrInvalidTransition, user.Status, newStatus)
	}

	user.Status = newStatus
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return user, nil
}

func (s *lifecycleService) SetRole(ctx context.Context, id string, newRole model.Role) (*model.User, error) {
	if !model.ValidRole(newRole) {
		return nil, errors.ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == newRole {
		return nil, errors.ErrNoChange
	}

	user.Role = newRole
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return user, nil
}

func (s *lifecycleService) Remove(ctx context.Context, id string) error {
	return s.userRepo.Remove(ctx, id)
}
