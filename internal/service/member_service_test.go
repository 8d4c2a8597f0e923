package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"memberdesk/internal/errors"
	"memberdesk/internal/model"
)

func TestMemberService_ListPending(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.User{
		{ID: "1", Status: model.StatusPending},
		{ID: "2", Status: model.StatusActive},
		{ID: "3", Status: model.StatusPending},
		{ID: "4", Status: model.StatusRejected},
	}, nil)

	service := NewMemberService(mockRepo)
	pending, err := service.ListPending(context.Background())

	assert.NoError(t, err)
	assert.Len(t, pending, 2)
	assert.Equal(t, "1", pending[0].ID)
	assert.Equal(t, "3", pending[1].ID)
}

func TestMemberService_Stats(t *testing.T) {
	now := time.Now().UTC()
	lastYear := now.AddDate(-1, 0, 0)

	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.User{
		{ID: "1", Status: model.StatusActive, CreatedAt: now},
		{ID: "2", Status: model.StatusActive, CreatedAt: lastYear},
		{ID: "3", Status: model.StatusPending, CreatedAt: now},
		{ID: "4", Status: model.StatusRejected, CreatedAt: lastYear},
		{ID: "5", Status: model.StatusDeactive, CreatedAt: lastYear},
	}, nil)

	service := NewMemberService(mockRepo)
	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalMembers)
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, 2, stats.NewThisMonth)
}

func TestMemberService_UpdateProfile(t *testing.T) {
	self := &model.User{
		ID: "1", Email: "jane@example.com",
		CountryCode: "+62", PhoneNumber: "8123456789",
		Role: model.RoleMember, Status: model.StatusActive,
	}

	tests := []struct {
		name          string
		others        []model.User
		input         ProfileInput
		expectedError error
	}{
		{
			name:   "updates contact and social fields",
			others: nil,
			input: ProfileInput{
				FullName:    "Jane Updated",
				CountryCode: "+62",
				PhoneNumber: "8999888777",
				Instagram:   "@updated",
			},
			expectedError: nil,
		},
		{
			name: "keeping own phone is not a collision",
			input: ProfileInput{
				FullName:    "Jane Member",
				CountryCode: "+62",
				PhoneNumber: "8123456789",
			},
			expectedError: nil,
		},
		{
			name: "phone collision with another member",
			others: []model.User{
				{ID: "2", Email: "other@example.com", CountryCode: "+62", PhoneNumber: "8999888777", Status: model.StatusActive},
			},
			input: ProfileInput{
				FullName:    "Jane Member",
				CountryCode: "+62",
				PhoneNumber: "8999888777",
			},
			expectedError: errors.ErrDuplicateIdentity,
		},
		{
			name: "rejected record's phone does not collide",
			others: []model.User{
				{ID: "2", Email: "other@example.com", CountryCode: "+62", PhoneNumber: "8999888777", Status: model.StatusRejected},
			},
			input: ProfileInput{
				FullName:    "Jane Member",
				CountryCode: "+62",
				PhoneNumber: "8999888777",
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := *self
			mockRepo := new(MockUserRepository)
			mockRepo.On("FindByID", mock.Anything, "1").Return(&current, nil)
			mockRepo.On("List", mock.Anything).Return(append([]model.User{current}, tt.others...), nil)
			if tt.expectedError == nil {
				mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			}

			service := NewMemberService(mockRepo)
			updated, err := service.UpdateProfile(context.Background(), "1", tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, updated)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input.PhoneNumber, updated.PhoneNumber)
				// immutable fields untouched
				assert.Equal(t, "jane@example.com", updated.Email)
				assert.Equal(t, model.StatusActive, updated.Status)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
