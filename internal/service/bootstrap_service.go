package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"memberdesk/internal/errors"
	"memberdesk/internal/model"
	"memberdesk/internal/repository"
)

// BootstrapService seeds the default administrator record and reconciles
// its invariants on every application start.
type BootstrapService interface {
	EnsureAdminSeed(ctx context.Context) error
}

type bootstrapService struct {
	userRepo   repository.UserRepository
	adminEmail string
	adminPass  string
}

// NewBootstrapService creates a bootstrap service for the reserved admin
// email and its fixed initial credential.
func NewBootstrapService(userRepo repository.UserRepository, adminEmail, adminPass string) BootstrapService {
	return &bootstrapService{
		userRepo:   userRepo,
		adminEmail: adminEmail,
		adminPass:  adminPass,
	}
}

// EnsureAdminSeed is idempotent: at most one record ever exists for the
// reserved email. If it exists, any drift in role, status, or credential is
// converged back to the expected values.
func (s *bootstrapService) EnsureAdminSeed(ctx context.Context) error {
	admin, err := s.userRepo.FindByEmail(ctx, s.adminEmail)
	if err != nil && err != errors.ErrUserNotFound {
		return fmt.Errorf("find admin: %w", err)
	}

	if admin == nil || err == errors.ErrUserNotFound {
		hashed, err := bcrypt.GenerateFromPassword([]byte(s.adminPass), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		seed := &model.User{
			ID:           uuid.New().String(),
			FullName:     "Default Admin",
			Email:        s.adminEmail,
			CountryCode:  "+62",
			PhoneNumber:  "8112233445",
			PasswordHash: string(hashed),
			Role:         model.RoleAdmin,
			Status:       model.StatusActive,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.userRepo.Append(ctx, seed); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		return nil
	}

	changed := false
	if admin.Role != model.RoleAdmin {
		admin.Role = model.RoleAdmin
		changed = true
	}
	if admin.Status != model.StatusActive {
		admin.Status = model.StatusActive
		changed = true
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(s.adminPass)) != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(s.adminPass), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		admin.PasswordHash = string(hashed)
		changed = true
	}
	if !changed {
		return nil
	}

	if err := s.userRepo.Update(ctx, admin); err != nil {
		return fmt.Errorf("reconcile admin: %w", err)
	}
	return nil
}
