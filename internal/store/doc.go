// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the persistence adapter of the application.
//
// A single [Storage] interface has two implementations:
//   - a relational one over SQLite or PostgreSQL, with queries built by
//     squirrel and the schema applied by goose migrations;
//   - a key-value one over Redis, keeping every table as a JSON list.
//
// Both assign ids from a per-table counter that starts at 1 and is never
// reset, and both take creation timestamps from a [Clock], so the same
// sequence of calls produces the same rows on either backend.
package store
