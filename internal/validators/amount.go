// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user text into a monetary amount. Empty text is zero.
// Anything decimal cannot parse (including "NaN" and "Inf") and negative
// values yield ErrInvalidAmount.
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}

	return amount, nil
}
