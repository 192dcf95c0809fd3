// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers as one.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start must not block: implementations spawn their own goroutine, which
// exits when ctx is cancelled or Stop is called. Stop blocks until that
// goroutine has returned and is a no-op on a worker that is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
