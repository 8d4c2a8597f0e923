package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"memberdesk/internal/auth"
	"memberdesk/internal/errors"
	"memberdesk/internal/model"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func activeMember(t *testing.T, password string) model.User {
	return model.User{
		ID:           "member-1",
		FullName:     "Jane Member",
		Email:        "jane@example.com",
		CountryCode:  "+62",
		PhoneNumber:  "8123456789",
		PasswordHash: hashOf(t, password),
		Role:         model.RoleMember,
		Status:       model.StatusActive,
	}
}

func TestAuthService_Authenticate_IdentifierSymmetry(t *testing.T) {
	member := activeMember(t, "Abc12345!")

	tests := []struct {
		name       string
		identifier string
		password   string
		wantMatch  bool
	}{
		{"by email", "jane@example.com", "Abc12345!", true},
		{"by email case-folded", "  JANE@Example.com ", "Abc12345!", true},
		{"by phone key", "+628123456789", "Abc12345!", true},
		{"by phone key with spaces", " +62 812 345 6789 ", "Abc12345!", true},
		{"wrong password", "jane@example.com", "Wrong999!", false},
		{"unknown identifier", "nobody@example.com", "Abc12345!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockRepo.On("List", mock.Anything).Return([]model.User{member}, nil)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
			user, err := service.Authenticate(context.Background(), tt.identifier, tt.password)

			assert.NoError(t, err)
			if tt.wantMatch {
				assert.NotNil(t, user)
				assert.Equal(t, member.ID, user.ID)
			} else {
				assert.Nil(t, user)
			}
		})
	}
}

func TestAuthService_Login_StatusGate(t *testing.T) {
	tests := []struct {
		name          string
		status        model.Status
		expectedError error
	}{
		{"pending blocked", model.StatusPending, errors.ErrAccountPending},
		{"rejected blocked", model.StatusRejected, errors.ErrAccountRejected},
		{"deactive blocked", model.StatusDeactive, errors.ErrAccountDeactivated},
		{"active proceeds", model.StatusActive, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := activeMember(t, "Abc12345!")
			member.Status = tt.status

			mockRepo := new(MockUserRepository)
			mockRepo.On("List", mock.Anything).Return([]model.User{member}, nil)

			mockTokenStore := new(MockTokenStore)
			if tt.expectedError == nil {
				mockTokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, member.ID, member.Email, mock.Anything).Return(nil)
			}

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)
			accessToken, refreshToken, user, err := service.Login(context.Background(), "jane@example.com", "Abc12345!")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, model.StatusActive, user.Status)
			}

			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_UnknownIdentifier(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.User{}, nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
	_, _, _, err := service.Login(context.Background(), "nobody@example.com", "Abc12345!")

	assert.Equal(t, errors.ErrInvalidCredentials, err)
}

func TestAuthService_ResolveIdentity_NoCredentialCheck(t *testing.T) {
	member := activeMember(t, "Abc12345!")

	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.User{member}, nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
	user, err := service.ResolveIdentity(context.Background(), "+628123456789")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, member.ID, user.ID)
}

func TestAuthService_ResetPassword(t *testing.T) {
	member := activeMember(t, "OldPass1!")

	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.User{member}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == member.ID &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("NewPass1!")) == nil
	})).Return(nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
	err := service.ResetPassword(context.Background(), "jane@example.com", "NewPass1!")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ResetPassword_UnknownIdentifier(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.User{}, nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
	err := service.ResetPassword(context.Background(), "nobody@example.com", "NewPass1!")

	assert.Equal(t, errors.ErrUserNotFound, err)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	member := activeMember(t, "Abc12345!")
	jwtService := auth.NewJWTService("test-secret")

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(member.ID, member.Email, member.Role)
	assert.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(member.ID, member.Email, nil)
	mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)

	accessToken, err := service.RefreshToken(context.Background(), refreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	assert.NoError(t, service.Logout(context.Background(), refreshToken))
	mockTokenStore.AssertExpectations(t)
}
