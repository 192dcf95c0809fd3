// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-ahorra/internal/app"

// User-facing failures. Storage causes are wrapped next to them so logs keep
// the detail while app.UserMessage yields only the generic text.
var (
	ErrUsersNotLoaded  = app.NewError(app.MsgUsersNotLoaded)
	ErrUserNotSaved    = app.NewError(app.MsgUserNotSaved)
	ErrUserNotUpdated  = app.NewError(app.MsgUserNotUpdated)
	ErrUserNotDeleted  = app.NewError(app.MsgUserNotDeleted)
	ErrUsersNotDeleted = app.NewError(app.MsgUsersNotDeleted)
	ErrUserNotFound    = app.NewError(app.MsgUserNotFound)
	ErrEmailTaken      = app.NewError(app.MsgEmailTaken)
	ErrWrongPassword   = app.NewError(app.MsgWrongPassword)
	ErrNotLoggedIn     = app.NewError(app.MsgNotLoggedIn)

	ErrRecordsNotLoaded  = app.NewError(app.MsgRecordsNotLoaded)
	ErrRecordNotSaved    = app.NewError(app.MsgRecordNotSaved)
	ErrRecordNotUpdated  = app.NewError(app.MsgRecordNotUpdated)
	ErrRecordNotDeleted  = app.NewError(app.MsgRecordNotDeleted)
	ErrRecordsNotDeleted = app.NewError(app.MsgRecordsNotDeleted)
	ErrRecordNotFound    = app.NewError(app.MsgRecordNotFound)

	ErrBudgetsNotLoaded    = app.NewError(app.MsgBudgetsNotLoaded)
	ErrBudgetNotSaved      = app.NewError(app.MsgBudgetNotSaved)
	ErrBudgetNotUpdated    = app.NewError(app.MsgBudgetNotUpdated)
	ErrBudgetNotDeleted    = app.NewError(app.MsgBudgetNotDeleted)
	ErrBudgetsNotDeleted   = app.NewError(app.MsgBudgetsNotDeleted)
	ErrBudgetNotFound      = app.NewError(app.MsgBudgetNotFound)
	ErrBudgetAlreadyExists = app.NewError(app.MsgBudgetExists)

	ErrReportNotBuilt = app.NewError(app.MsgReportNotBuilt)
)
