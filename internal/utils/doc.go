// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the HTTP server and its
// client: JSON response writing, the preconfigured resty client and trace id
// generation.
package utils
