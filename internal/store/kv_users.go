// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-ahorra/models"
)

// kvUserRepository adds the email-keyed operations to the Redis users list.
type kvUserRepository struct {
	*kvTable[models.User, userRow]
}

// GetUserByEmail scans the users list for email.
func (r *kvUserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	client, err := r.conn.get()
	if err != nil {
		return models.User{}, err
	}

	rows, err := r.load(ctx, client)
	if err != nil {
		return models.User{}, err
	}

	for _, row := range rows {
		if row.Email == email {
			return r.schema.fromRow(row), nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// UpdateUserPassword rewrites the stored hash of the user with email, or
// returns [ErrUserNotFound].
func (r *kvUserRepository) UpdateUserPassword(ctx context.Context, email, passwordHash string) error {
	client, err := r.conn.get()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.load(ctx, client)
	if err != nil {
		return err
	}

	for i := range rows {
		if rows[i].Email == email {
			rows[i].PasswordHash = passwordHash
			return r.save(ctx, client, rows)
		}
	}
	return ErrUserNotFound
}
