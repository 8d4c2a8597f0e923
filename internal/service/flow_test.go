package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"memberdesk/internal/auth"
	"memberdesk/internal/errors"
	"memberdesk/internal/model"
	"memberdesk/internal/repository"
	"memberdesk/internal/store"
)

// stubTokenStore satisfies auth.TokenStoreInterface without Redis for
// end-to-end flows over the real file store.
type stubTokenStore struct{}

func (stubTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, email string, ttl time.Duration) error {
	return nil
}

func (stubTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, error) {
	return "", "", fmt.Errorf("refresh token not found")
}

func (stubTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return nil
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	return string(data)
}

func TestMembershipFlow_RegisterApproveLogin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.json")
	repo := repository.NewUserRepository(store.NewFileStore(path))
	ctx := context.Background()

	registration := NewRegistrationService(repo)
	authSvc := NewAuthService(repo, auth.NewJWTService("test-secret"), stubTokenStore{})
	lifecycle := NewLifecycleService(repo)

	user, err := registration.Register(ctx, RegisterInput{
		FullName:    "A Example",
		Email:       "a@x.com",
		CountryCode: "+1",
		PhoneNumber: "5551234",
		Password:    "Abc12345!",
		Instagram:   "@a",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, user.Status)

	// Pending record must not get a session, even with the right credential.
	_, _, _, err = authSvc.Login(ctx, "a@x.com", "Abc12345!")
	assert.Equal(t, errors.ErrAccountPending, err)

	// Admin approves.
	updated, err := lifecycle.SetStatus(ctx, user.ID, model.StatusActive)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusActive, updated.Status)

	// Both identifiers now authenticate the same record.
	accessToken, refreshToken, loggedIn, err := authSvc.Login(ctx, "a@x.com", "Abc12345!")
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, model.StatusActive, loggedIn.Status)

	_, _, byPhone, err := authSvc.Login(ctx, "+1 5551234", "Abc12345!")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byPhone.ID)
}

func TestMembershipFlow_DuplicateRegistrationLeavesCollectionUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.json")
	repo := repository.NewUserRepository(store.NewFileStore(path))
	ctx := context.Background()

	registration := NewRegistrationService(repo)

	input := RegisterInput{
		FullName:    "A Example",
		Email:       "a@x.com",
		CountryCode: "+1",
		PhoneNumber: "5551234",
		Password:    "Abc12345!",
		Instagram:   "@a",
	}
	_, err := registration.Register(ctx, input)
	assert.NoError(t, err)

	before := readFile(t, path)

	input.PhoneNumber = "5559999"
	_, err = registration.Register(ctx, input)
	assert.Equal(t, errors.ErrDuplicateIdentity, err)

	users, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, before, readFile(t, path))
}

func TestMembershipFlow_NoOpStatusChangeLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.json")
	repo := repository.NewUserRepository(store.NewFileStore(path))
	ctx := context.Background()

	registration := NewRegistrationService(repo)
	lifecycle := NewLifecycleService(repo)

	user, err := registration.Register(ctx, RegisterInput{
		FullName:    "A Example",
		Email:       "a@x.com",
		CountryCode: "+1",
		PhoneNumber: "5551234",
		Password:    "Abc12345!",
		Instagram:   "@a",
	})
	assert.NoError(t, err)

	before := readFile(t, path)

	_, err = lifecycle.SetStatus(ctx, user.ID, model.StatusPending)
	assert.Equal(t, errors.ErrNoChange, err)
	assert.Equal(t, before, readFile(t, path))
}

func TestMembershipFlow_DeleteRemovesRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.json")
	repo := repository.NewUserRepository(store.NewFileStore(path))
	ctx := context.Background()

	registration := NewRegistrationService(repo)
	lifecycle := NewLifecycleService(repo)

	user, err := registration.Register(ctx, RegisterInput{
		FullName:    "A Example",
		Email:       "a@x.com",
		CountryCode: "+1",
		PhoneNumber: "5551234",
		Password:    "Abc12345!",
		Instagram:   "@a",
	})
	assert.NoError(t, err)

	assert.NoError(t, lifecycle.Remove(ctx, user.ID))

	users, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, users)

	assert.Equal(t, errors.ErrUserNotFound, lifecycle.Remove(ctx, user.ID))
}
