// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-ahorra/internal/notify"
	"github.com/MKhiriev/go-ahorra/models"
)

// UserService manages accounts and the single local session.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Register(ctx context.Context, input models.UserInput) (models.User, error)
	// Login verifies credentials and stores the session marker.
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	// CurrentUser resolves the session marker. Returns ErrNotLoggedIn when
	// nobody is logged in or the marked user no longer exists.
	CurrentUser(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error
	// UpdateProfile changes name, email and phone. The password is untouched.
	UpdateProfile(ctx context.Context, id int64, input models.UserInput) (models.User, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error

	Changes() *notify.Hub[models.Change]
}

// RecordService manages ledger entries and checks expenses against budgets.
type RecordService interface {
	List(ctx context.Context) ([]models.Record, error)
	Get(ctx context.Context, id int64) (models.Record, error)
	// Create stores a record. For expenses it also returns the month-to-date
	// status of the record's category; for income the status is zero.
	Create(ctx context.Context, input models.RecordInput) (models.Record, models.BudgetStatus, error)
	// Update replaces the record with id. The status is computed for the new
	// category only.
	Update(ctx context.Context, id int64, input models.RecordInput) (models.Record, models.BudgetStatus, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	// CheckBudget computes the current month's spend for category.
	CheckBudget(ctx context.Context, category string) (models.BudgetStatus, error)

	Changes() *notify.Hub[models.Change]
	// Alerts receives a BudgetAlert whenever a write leaves a category near
	// or over its limit.
	Alerts() *notify.Hub[models.BudgetAlert]
}

// BudgetService manages per-category monthly budgets.
type BudgetService interface {
	List(ctx context.Context) ([]models.Budget, error)
	Get(ctx context.Context, id int64) (models.Budget, error)
	// Create rejects a second budget for the same category with
	// ErrBudgetAlreadyExists.
	Create(ctx context.Context, input models.BudgetInput) (models.Budget, error)
	Update(ctx context.Context, id int64, input models.BudgetInput) (models.Budget, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error

	Changes() *notify.Hub[models.Change]
}

// ReportService derives read-only views from records and budgets.
type ReportService interface {
	Balance(ctx context.Context) (models.Balance, error)
	// Monthly returns twelve buckets, January first, for year.
	Monthly(ctx context.Context, year int) ([]models.MonthlyTotals, error)
	// Notifications returns dashboard entries; never empty.
	Notifications(ctx context.Context) ([]models.Notification, error)
}
