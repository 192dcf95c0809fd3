// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotInitialized is returned by every operation issued before
	// [Storage.Initialize] succeeded.
	ErrNotInitialized = errors.New("storage is not initialized")

	// ErrNotFound is returned when a row or value addressed by key does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrUserNotFound is returned when no user matches the given email.
	ErrUserNotFound = errors.New("no user was found")

	// ErrEmailAlreadyExists is returned when a user insert or update would
	// duplicate an email that is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUnknownBackend is returned by [NewStorage] for an unsupported
	// backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Low-level operation errors. These are returned (or wrapped) by repository
// methods when a backend operation fails before any domain logic can be
// applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails
	// mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrReadingKey is returned when a Redis read fails.
	ErrReadingKey = errors.New("failed to read key")

	// ErrWritingKey is returned when a Redis write fails.
	ErrWritingKey = errors.New("failed to write key")

	// ErrDecodingRows is returned when a stored JSON list cannot be decoded.
	ErrDecodingRows = errors.New("failed to decode stored rows")
)
