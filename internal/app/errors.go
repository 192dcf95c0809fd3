// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "errors"

// Error is a failure whose message is safe to show to the end user.
// Services wrap the underlying cause next to it with fmt.Errorf("%w: %w").
type Error struct {
	msg string
}

// NewError returns a user-facing error carrying msg.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

// UserMessage returns the message of the first [Error] in err's chain, or
// [MsgInternalServerError] when the chain carries none.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.msg
	}
	return MsgInternalServerError
}
