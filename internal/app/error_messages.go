// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-ahorra services and HTTP handlers.
//
// All Msg* constants are human-readable message strings shown to the end
// user. They describe the failed operation in general terms and never carry
// the underlying engine error.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or a path parameter is malformed.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned for failures with no more specific message.
	MsgInternalServerError = "internal server error"

	MsgStorageNotInitialized = "the database could not be initialized"

	MsgUsersNotLoaded  = "could not load the users"
	MsgUserNotSaved    = "could not save the user"
	MsgUserNotUpdated  = "could not update the user"
	MsgUserNotDeleted  = "could not delete the user"
	MsgUsersNotDeleted = "could not delete the users"
	MsgUserNotFound    = "no user is registered with that email"
	MsgEmailTaken      = "the email is already registered"
	MsgWrongPassword   = "the password is incorrect"
	MsgNotLoggedIn     = "no user is logged in"

	MsgRecordsNotLoaded  = "could not load the records"
	MsgRecordNotSaved    = "could not save the record"
	MsgRecordNotUpdated  = "could not update the record"
	MsgRecordNotDeleted  = "could not delete the record"
	MsgRecordsNotDeleted = "could not delete the records"
	MsgRecordNotFound    = "the record does not exist"

	MsgBudgetsNotLoaded  = "could not load the budgets"
	MsgBudgetNotSaved    = "could not save the budget"
	MsgBudgetNotUpdated  = "could not update the budget"
	MsgBudgetNotDeleted  = "could not delete the budget"
	MsgBudgetsNotDeleted = "could not delete the budgets"
	MsgBudgetNotFound    = "the budget does not exist"
	MsgBudgetExists      = "a budget already exists for that category, edit it instead"

	MsgReportNotBuilt = "could not build the report"
)
