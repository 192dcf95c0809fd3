// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the schema of the relational backends and
// applies it with goose. Each dialect keeps its own directory.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Dialects understood by [Migrate].
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

var ErrUnknownDialect = errors.New("unknown migration dialect")

// Migrate brings the schema of db up to the latest version for dialect.
// Running it against an up-to-date database is a no-op.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	var gooseDialect goose.Dialect
	switch dialect {
	case DialectSQLite:
		gooseDialect = goose.DialectSQLite3
	case DialectPostgres:
		gooseDialect = goose.DialectPostgres
	default:
		return fmt.Errorf("migration error: %w: %q", ErrUnknownDialect, dialect)
	}

	fsys, err := fs.Sub(embedMigrations, dialect)
	if err != nil {
		return fmt.Errorf("migration error reading embedded files: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
