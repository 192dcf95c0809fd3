// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle contract of the transports managed by this package.
type Server interface {
	// RunServer serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns early with an error if the listener fails.
	RunServer(ctx context.Context) error

	// Shutdown stops accepting connections and waits for in-flight requests
	// until ctx expires.
	Shutdown(ctx context.Context) error
}
