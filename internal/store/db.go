// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/abcwallet/abc-core/internal/logger"
	"github.com/abcwallet/abc-core/migrations"
)

// DB is the storage layer's root dependency: it embeds *sql.DB to expose
// the standard database/sql API while carrying the pieces that differ
// between the PostgreSQL and SQLite backends.
//
//   - builder picks the squirrel placeholder format ($1.. for PostgreSQL,
//     ? for SQLite) so the rest of store can build queries without a
//     backend switch of its own.
//   - errorClassificator normalizes driver-specific constraint errors
//     (unique violation, etc.) into the sentinel errors in errors.go.
//   - logger is used for structured logging of database operations.
type DB struct {
	*sql.DB

	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all pending schema migrations embedded in the migrations
// package, choosing the PostgreSQL or SQLite migration set based on the
// driver this DB was opened with.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
