// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "time"

// Clock supplies creation timestamps for new rows.
type Clock func() time.Time

// SystemClock returns the current UTC time truncated to microseconds, the
// finest precision every backend round-trips.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Option customizes a storage constructed by [NewStorage],
// [NewSQLStorage] or [NewRedisStorage].
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock overrides the timestamp source.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: SystemClock}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
