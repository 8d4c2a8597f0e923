package store

import (
	"context"
	"encoding/json"
	"fmt"

	"memberdesk/internal/model"
)

// Store persists the member collection as one JSON-encoded array under a
// single storage key. Every write replaces the whole collection: last
// writer wins, there is no per-record update. This mirrors the browser
// local-storage layout the data model was defined against.
type Store interface {
	// GetAll returns all records in storage order. A missing key or an
	// unreachable backend on read degrades to an empty collection, never
	// an error.
	GetAll(ctx context.Context) ([]model.User, error)
	// ReplaceAll persists the full replacement collection. Unlike reads,
	// write failures surface loudly as ErrStorageUnavailable.
	ReplaceAll(ctx context.Context, users []model.User) error
}

// record is the wire form of one user in the stored array. The model hides
// the password hash from API JSON, so persistence carries it explicitly.
type record struct {
	model.User
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Encode serializes the collection to its stored JSON-array form.
func Encode(users []model.User) ([]byte, error) {
	records := make([]record, len(users))
	for i, u := range users {
		records[i] = record{User: u, PasswordHash: u.PasswordHash}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode members: %w", err)
	}
	return data, nil
}

// Decode parses a stored JSON array, normalizing legacy field values.
// Malformed data degrades to an empty collection.
func Decode(data []byte) []model.User {
	if len(data) == 0 {
		return []model.User{}
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return []model.User{}
	}
	users := make([]model.User, len(records))
	for i, r := range records {
		u := r.User
		u.PasswordHash = r.PasswordHash
		u.Normalize()
		users[i] = u
	}
	return users
}
