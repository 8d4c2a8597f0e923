package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"memberdesk/internal/errors"
	"memberdesk/internal/model"
	"memberdesk/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the fields a registrant submits. Role and status
// are never caller-controlled; they are assigned here.
type RegisterInput struct {
	FullName    string
	Email       string
	CountryCode string
	PhoneNumber string
	Password    string
	Instagram   string
	Tiktok      string
	Facebook    string
	IDCardImage string
}

// RegistrationService admits new member records under the uniqueness policy.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
}

type registrationService struct {
	userRepo repository.UserRepository
}

// NewRegistrationService creates a new registration service.
func NewRegistrationService(userRepo repository.UserRepository) RegistrationService {
	return &registrationService{userRepo: userRepo}
}

// Register admits a new record with status pending and the default role.
// Uniqueness is checked against non-rejected records only; a rejected
// record's email permanently blocks re-registration.
func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phoneKey := PhoneKey(input.CountryCode, input.PhoneNumber)

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	for _, u := range users {
		emailMatch := strings.ToLower(u.Email) == email
		if u.Status == model.StatusRejected {
			if emailMatch {
				return nil, errors.ErrPermanentlyBlocked
			}
			continue
		}
		if emailMatch || PhoneKey(u.CountryCode, u.PhoneNumber) == phoneKey {
			return nil, errors.ErrDuplicateIdentity
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		FullName:     strings.TrimSpace(input.FullName),
		Email:        email,
		CountryCode:  strings.TrimSpace(input.CountryCode),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		PasswordHash: string(hashed),
		Role:         model.RoleMember,
		Status:       model.StatusPending,
		Instagram:    input.Instagram,
		Tiktok:       input.Tiktok,
		Facebook:     input.Facebook,
		IDCardImage:  input.IDCardImage,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Append(ctx, user); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}

	return user, nil
}

// PhoneKey builds the comparison key for a phone identity: country code
// concatenated with the number, all whitespace stripped.
func PhoneKey(countryCode, phoneNumber string) string {
	return stripSpace(countryCode) + stripSpace(phoneNumber)
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
