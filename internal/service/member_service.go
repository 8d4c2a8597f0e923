package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"memberdesk/internal/errors"
	"memberdesk/internal/model"
	"memberdesk/internal/repository"
)

// ProfileInput carries the member-editable fields of a record. Email, id,
// role, status, and the ID document are immutable here.
type ProfileInput struct {
	FullName    string
	CountryCode string
	PhoneNumber string
	Instagram   string
	Tiktok      string
	Facebook    string
}

// DashboardStats is the summary shown on the member dashboard.
type DashboardStats struct {
	TotalMembers int `json:"totalMembers"`
	PendingCount int `json:"pendingCount"`
	NewThisMonth int `json:"newThisMonth"`
}

// MemberService covers member listing, profile updates, and dashboard stats.
type MemberService interface {
	List(ctx context.Context) ([]model.User, error)
	ListPending(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, input ProfileInput) (*model.User, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

type memberService struct {
	userRepo repository.UserRepository
}

// NewMemberService creates a new member service.
func NewMemberService(userRepo repository.UserRepository) MemberService {
	return &memberService{userRepo: userRepo}
}

func (s *memberService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *memberService) ListPending(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.Status == model.StatusPending {
			pending = append(pending, u)
		}
	}
	return pending, nil
}

func (s *memberService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// UpdateProfile rewrites the mutable contact and social fields. The new
// phone pair must not collide with another non-rejected record.
func (s *memberService) UpdateProfile(ctx context.Context, id string, input ProfileInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	phoneKey := PhoneKey(input.CountryCode, input.PhoneNumber)
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	for _, u := range users {
		if u.ID == id || u.Status == model.StatusRejected {
			continue
		}
		if PhoneKey(u.CountryCode, u.PhoneNumber) == phoneKey {
			return nil, errors.ErrDuplicateIdentity
		}
	}

	user.FullName = strings.TrimSpace(input.FullName)
	user.CountryCode = strings.TrimSpace(input.CountryCode)
	user.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	user.Instagram = input.Instagram
	user.Tiktok = input.Tiktok
	user.Facebook = input.Facebook

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return user, nil
}

// Stats counts active members, pending registrations, and records created
// in the current calendar month.
func (s *memberService) Stats(ctx context.Context) (*DashboardStats, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stats := &DashboardStats{}
	for _, u := range users {
		switch u.Status {
		case model.StatusActive:
			stats.TotalMembers++
		case model.StatusPending:
			stats.PendingCount++
		}
		if u.CreatedAt.Year() == now.Year() && u.CreatedAt.Month() == now.Month() {
			stats.NewThisMonth++
		}
	}
	return stats, nil
}
