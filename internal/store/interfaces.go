// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-ahorra/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Storage is the persistence adapter shared by every service. Both the
// relational and the Redis implementations satisfy it with identical
// observable behavior.
type Storage interface {
	// Initialize opens the backend and prepares the schema. It is safe to
	// call more than once; a failed call leaves the storage unopened so a
	// later call may retry.
	Initialize(ctx context.Context) error

	Users() UserRepository
	Records() RecordRepository
	Budgets() BudgetRepository
	Values() ValueStore

	// Close releases the backend connection.
	Close() error
}

// Repository is the CRUD surface of one table.
type Repository[T any] interface {
	// GetAll returns every row, newest first. An empty table yields an
	// empty slice.
	GetAll(ctx context.Context) ([]T, error)
	// Get returns the row with id or [ErrNotFound].
	Get(ctx context.Context, id int64) (T, error)
	// Add stores item and returns it with the assigned id and creation time.
	Add(ctx context.Context, item T) (T, error)
	// Update replaces the mutable fields of the row with item's id.
	// Returns [ErrNotFound] when no such row exists.
	Update(ctx context.Context, item T) error
	// Delete removes the row with id. A missing row is not an error.
	Delete(ctx context.Context, id int64) error
	// DeleteAll empties the table.
	DeleteAll(ctx context.Context) error
}

// RecordRepository persists ledger entries.
type RecordRepository interface {
	Repository[models.Record]
}

// BudgetRepository persists per-category budgets.
type BudgetRepository interface {
	Repository[models.Budget]
}

// UserRepository persists user accounts. Update never touches the password
// hash; use UpdateUserPassword for that.
type UserRepository interface {
	Repository[models.User]

	// GetUserByEmail returns the user with email or [ErrUserNotFound].
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	// UpdateUserPassword replaces the password hash of the user with email.
	// Returns [ErrUserNotFound] when no row matched.
	UpdateUserPassword(ctx context.Context, email, passwordHash string) error
}

// ValueStore keeps small string values under fixed keys.
type ValueStore interface {
	// Get returns the value stored under key or [ErrNotFound].
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. A missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ErrorClassificator maps driver errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
