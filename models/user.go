// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is a registered account of the finance tracker.
// PasswordHash is a bcrypt digest and never leaves the service layer.
type User struct {
	// ID is assigned by the storage on insert.
	ID int64 `json:"id"`

	// Name is the display name shown in greetings.
	Name string `json:"name"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Phone is a free-form contact number.
	Phone string `json:"phone"`

	// PasswordHash stores the bcrypt digest of the user's password.
	PasswordHash string `json:"-"`

	// CreatedAt is the registration timestamp, assigned by the storage.
	CreatedAt time.Time `json:"created_at"`
}

// GetID returns the storage identifier.
func (u User) GetID() int64 {
	return u.ID
}

// WithIdentity returns a copy of u carrying the storage-assigned identity.
func (u User) WithIdentity(id int64, createdAt time.Time) User {
	u.ID = id
	u.CreatedAt = createdAt
	return u
}

// UserInput carries the fields a caller supplies on registration or profile edit.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password,omitempty"`
}

// Credentials is a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
