// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the go-ahorra HTTP API.
//
// [ServerAdapter] mirrors the server's resource groups (records, budgets,
// users and reports). Non-2xx replies are mapped to the sentinel errors in
// errors.go so callers can branch with [errors.Is], e.g. [ErrConflict] for a
// duplicate budget or [ErrNotFound] for a missing record.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-ahorra/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to a running go-ahorra server.
type ServerAdapter interface {
	ListRecords(ctx context.Context) ([]models.Record, error)
	GetRecord(ctx context.Context, id int64) (models.Record, error)
	// CreateRecord stores a record. For expenses the result carries the
	// budget status of the record's category after the write.
	CreateRecord(ctx context.Context, in models.RecordInput) (models.RecordResult, error)
	UpdateRecord(ctx context.Context, id int64, in models.RecordInput) (models.RecordResult, error)
	DeleteRecord(ctx context.Context, id int64) error
	DeleteAllRecords(ctx context.Context) error
	// BudgetStatus evaluates category against its budget for the current
	// month without writing anything.
	BudgetStatus(ctx context.Context, category string) (models.BudgetStatus, error)

	ListBudgets(ctx context.Context) ([]models.Budget, error)
	GetBudget(ctx context.Context, id int64) (models.Budget, error)
	CreateBudget(ctx context.Context, in models.BudgetInput) (models.Budget, error)
	UpdateBudget(ctx context.Context, id int64, in models.BudgetInput) (models.Budget, error)
	DeleteBudget(ctx context.Context, id int64) error
	DeleteAllBudgets(ctx context.Context) error

	ListUsers(ctx context.Context) ([]models.User, error)
	Register(ctx context.Context, in models.UserInput) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)
	ResetPassword(ctx context.Context, reset models.PasswordReset) error
	UpdateProfile(ctx context.Context, id int64, in models.UserInput) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	DeleteAllUsers(ctx context.Context) error

	Balance(ctx context.Context) (models.Balance, error)
	// Monthly returns the twelve monthly totals of year.
	Monthly(ctx context.Context, year int) ([]models.MonthlyTotals, error)
	Notifications(ctx context.Context) ([]models.Notification, error)
}
