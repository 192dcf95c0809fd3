// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the input rules of the finance tracker: users,
// ledger records and category budgets.
//
// Validators are pure predicates. They perform no I/O and are run by the
// service layer before anything reaches storage. Every rule violation wraps
// [ErrValidation], so callers can distinguish bad input from a storage
// failure with errors.Is.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
