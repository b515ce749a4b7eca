// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/schedulist/schedulist/internal/models"
)

// ErrNotFound is returned when the addressed event type or group does not
// exist. The service layer maps it to a not-found RPC code.
var ErrNotFound = errors.New("not found")

// ErrNotPermutation is returned when a reorder request does not carry exactly
// the identifiers of the stored collection. Accepting such a request would
// silently drop or invent items.
var ErrNotPermutation = errors.New("reorder ids are not a permutation of the collection")

// Store defines the interface for event type storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// ListGroups returns every group visible to the user, each with its
	// event types in position order.
	ListGroups(ctx context.Context, userID string) ([]models.Group, error)

	// GetEventType retrieves a single event type by ID.
	GetEventType(ctx context.Context, id int64) (*models.EventType, error)

	// CreateEventType persists a new event type at the tail of its group's
	// collection. The ID and Position fields are populated by the store.
	CreateEventType(ctx context.Context, profileID int64, et *models.EventType) error

	// ReorderEventTypes rewrites the positions of a group's collection to
	// match ids. The ids must be a permutation of the stored collection.
	ReorderEventTypes(ctx context.Context, profileID int64, ids []int64) error

	// SetEventTypeHidden updates the hidden flag of one event type.
	SetEventTypeHidden(ctx context.Context, id int64, hidden bool) error

	// DeleteEventType removes an event type and compacts the remaining
	// positions in its group.
	DeleteEventType(ctx context.Context, id int64) error

	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
