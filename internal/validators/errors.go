// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every input rule violation so callers can tell
// a validation failure from a storage failure with errors.Is.
var ErrValidation = errors.New("validation failed")

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

var (
	ErrEmptyName        = validationError("name must not be empty")
	ErrNameTooLong      = validationError(fmt.Sprintf("name must not exceed %d characters", MaxNameLength))
	ErrInvalidAmount    = validationError("amount must be a non-negative number")
	ErrNonPositive      = validationError("amount must be greater than zero")
	ErrEmptyCategory    = validationError("category is required")
	ErrCategoryTooLong  = validationError(fmt.Sprintf("category must not exceed %d characters", MaxCategoryLength))
	ErrInvalidKind      = validationError("kind must be either ingreso or gasto")
	ErrInvalidEmail     = validationError("email address is not valid")
	ErrEmptyPhone       = validationError("phone must not be empty")
	ErrEmptyPassword    = validationError("password must not be empty")
	ErrPasswordTooShort = validationError(fmt.Sprintf("password must have at least %d characters", MinPasswordLength))
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
