// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RecordResult is the reply to a record write. BudgetStatus is set for
// expenses only.
type RecordResult struct {
	Record       Record        `json:"record"`
	BudgetStatus *BudgetStatus `json:"budget_status,omitempty"`
}

// NewRecordResult pairs r with status, dropping a zero status.
func NewRecordResult(r Record, status BudgetStatus) RecordResult {
	result := RecordResult{Record: r}
	if status.Level != "" {
		result.BudgetStatus = &status
	}
	return result
}

// PasswordReset replaces the password of the account with Email.
type PasswordReset struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
