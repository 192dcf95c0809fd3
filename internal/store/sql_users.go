// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/models"
)

// sqlUserRepository adds the email-keyed operations to the generic users
// table.
type sqlUserRepository struct {
	*sqlTable[models.User]
}

// GetUserByEmail looks a user up by its unique email.
//
// Error handling:
//   - no matching row → [ErrUserNotFound].
//   - any other driver-level error → wrapped [ErrScanningRow].
func (r *sqlUserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.Ctx(ctx, r.logger)

	db, err := r.conn.get()
	if err != nil {
		return models.User{}, err
	}

	query, args, err := buildSelectUserByEmailQuery(db.builder, email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := userSchema.scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.GetUserByEmail").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// UpdateUserPassword stores a new password hash for the user with email.
// The email must already be normalized by the caller.
//
// Error handling:
//   - no user with that email → [ErrUserNotFound].
//   - any driver-level error → wrapped [ErrExecutingStatement].
func (r *sqlUserRepository) UpdateUserPassword(ctx context.Context, email, passwordHash string) error {
	log := logger.Ctx(ctx, r.logger)

	db, err := r.conn.get()
	if err != nil {
		return err
	}

	query, args, err := buildUpdateUserPasswordQuery(db.builder, email, passwordHash)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.UpdateUserPassword").Msg("unexpected DB error")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
