// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-ahorra/models"
)

// Length limits shared by every entity.
const (
	MaxNameLength     = 50
	MaxCategoryLength = 50
	MinPasswordLength = 6
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldName     = "name"
	FieldAmount   = "amount"
	FieldCategory = "category"
	FieldKind     = "kind"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldPassword = "password"

	// FieldBudgetAmount requires a strictly positive amount.
	FieldBudgetAmount = "budget amount"
	// FieldBudgetCategory requires a non-empty category.
	FieldBudgetCategory = "budget category"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EntityValidator implements Validator for the finance tracker models:
// User, UserInput, Record, RecordInput, Budget and BudgetInput. Text fields
// are checked after trimming surrounding whitespace. It performs no I/O.
type EntityValidator struct{}

// NewEntityValidator returns an EntityValidator as a Validator.
func NewEntityValidator() Validator {
	return &EntityValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted. When fields is empty the type's default field set is
// validated; the first violation is returned.
func (v *EntityValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RecordInput:
		return v.validateRecord(models.NewRecord(value), fields...)
	case *models.RecordInput:
		return v.validateRecord(models.NewRecord(*value), fields...)
	case models.Record:
		return v.validateRecord(value, fields...)
	case *models.Record:
		return v.validateRecord(*value, fields...)

	case models.BudgetInput:
		return v.validateBudget(models.NewBudget(value), fields...)
	case *models.BudgetInput:
		return v.validateBudget(models.NewBudget(*value), fields...)
	case models.Budget:
		return v.validateBudget(value, fields...)
	case *models.Budget:
		return v.validateBudget(*value, fields...)

	case models.UserInput:
		return v.validateUserInput(value, fields...)
	case *models.UserInput:
		return v.validateUserInput(*value, fields...)
	case models.User:
		return v.validateUserInput(models.UserInput{Name: value.Name, Email: value.Email, Phone: value.Phone}, withDefault(fields, FieldName, FieldEmail, FieldPhone)...)
	case *models.User:
		return v.validateUserInput(models.UserInput{Name: value.Name, Email: value.Email, Phone: value.Phone}, withDefault(fields, FieldName, FieldEmail, FieldPhone)...)

	default:
		return ErrUnsupportedType
	}
}

// validateRecord checks a ledger entry.
//
// Default fields: Name, Amount, Category, Kind.
func (v *EntityValidator) validateRecord(r models.Record, fields ...string) error {
	for _, f := range withDefault(fields, FieldName, FieldAmount, FieldCategory, FieldKind) {
		switch f {
		case FieldName:
			if err := checkName(r.Name); err != nil {
				return err
			}
		case FieldAmount:
			if r.Amount.IsNegative() {
				return ErrInvalidAmount
			}
		case FieldCategory:
			if utf8.RuneCountInString(strings.TrimSpace(r.Category)) > MaxCategoryLength {
				return ErrCategoryTooLong
			}
		case FieldKind:
			if r.Kind != models.Income && r.Kind != models.Expense {
				return ErrInvalidKind
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateBudget checks a category budget.
//
// Default fields: BudgetCategory, BudgetAmount.
func (v *EntityValidator) validateBudget(b models.Budget, fields ...string) error {
	for _, f := range withDefault(fields, FieldBudgetCategory, FieldBudgetAmount) {
		switch f {
		case FieldBudgetCategory:
			category := strings.TrimSpace(b.Category)
			if category == "" {
				return ErrEmptyCategory
			}
			if utf8.RuneCountInString(category) > MaxCategoryLength {
				return ErrCategoryTooLong
			}
		case FieldBudgetAmount:
			if !b.Amount.IsPositive() {
				return ErrNonPositive
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUserInput checks registration and profile data.
//
// Default fields: Name, Email, Phone, Password.
func (v *EntityValidator) validateUserInput(u models.UserInput, fields ...string) error {
	for _, f := range withDefault(fields, FieldName, FieldEmail, FieldPhone, FieldPassword) {
		switch f {
		case FieldName:
			if err := checkName(u.Name); err != nil {
				return err
			}
		case FieldEmail:
			if !emailPattern.MatchString(strings.TrimSpace(u.Email)) {
				return ErrInvalidEmail
			}
		case FieldPhone:
			if strings.TrimSpace(u.Phone) == "" {
				return ErrEmptyPhone
			}
		case FieldPassword:
			if u.Password == "" {
				return ErrEmptyPassword
			}
			if utf8.RuneCountInString(u.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func checkName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func withDefault(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}
