package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"memberdesk/internal/model"
)

func sampleUsers() []model.User {
	return []model.User{
		{
			ID:           "id-1",
			FullName:     "Jane Member",
			Email:        "jane@example.com",
			CountryCode:  "+62",
			PhoneNumber:  "8123456789",
			PasswordHash: "$2a$10$hash",
			Role:         model.RoleMember,
			Status:       model.StatusPending,
			Instagram:    "@jane",
			CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:           "id-2",
			FullName:     "Default Admin",
			Email:        "admin@trapo.com",
			CountryCode:  "+62",
			PhoneNumber:  "8112233445",
			PasswordHash: "$2a$10$adminhash",
			Role:         model.RoleAdmin,
			Status:       model.StatusActive,
			CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.json")
	s := NewFileStore(path)
	ctx := context.Background()

	users := sampleUsers()
	assert.NoError(t, s.ReplaceAll(ctx, users))

	got, err := s.GetAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, users, got)
}

func TestFileStore_MissingFileReadsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	got, err := s.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_MalformedFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, err := NewFileStore(path).GetAll(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_PersistsPasswordHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.json")
	s := NewFileStore(path)
	ctx := context.Background()

	assert.NoError(t, s.ReplaceAll(ctx, sampleUsers()))

	got, err := s.GetAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", got[0].PasswordHash)
}

func TestDecode_NormalizesLegacyValues(t *testing.T) {
	// Records written before the status/role enums settled used
	// "approved" and "user".
	data := []byte(`[
		{"id":"id-1","email":"old@example.com","role":"user","status":"approved"},
		{"id":"id-2","email":"new@example.com","role":"member","status":"pending"}
	]`)

	users := Decode(data)
	assert.Len(t, users, 2)
	assert.Equal(t, model.StatusActive, users[0].Status)
	assert.Equal(t, model.RoleMember, users[0].Role)
	assert.Equal(t, model.StatusPending, users[1].Status)
}

func TestDecode_ToleratesMissingOptionalFields(t *testing.T) {
	data := []byte(`[{"id":"id-1","email":"bare@example.com","status":"pending","role":"member"}]`)

	users := Decode(data)
	assert.Len(t, users, 1)
	assert.Empty(t, users[0].Instagram)
	assert.Empty(t, users[0].IDCardImage)
}
