// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result of running a driver-specific error
// through an [ErrorClassificator].
type ErrorClassification int

const (
	// ClassUnknown is the default for an error the classifier does not
	// recognize.
	ClassUnknown ErrorClassification = iota

	// ClassUniqueViolation indicates a write conflicted with a unique
	// constraint (duplicate userId, pin2Id, pinAuthId, or recovery2Id).
	ClassUniqueViolation
)

// ErrorClassificator maps a driver-level error into an [ErrorClassification]
// so repository methods can translate it into the sentinel errors in
// errors.go without depending on a specific SQL driver.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier implements [ErrorClassificator] for the pgx
// driver, inspecting the pgconn error code.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier { return &PostgresErrorClassifier{} }

func (PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ClassUniqueViolation
	}
	return ClassUnknown
}

// SQLiteErrorClassifier implements [ErrorClassificator] for the
// mattn/go-sqlite3 driver, inspecting the extended result code.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier { return &SQLiteErrorClassifier{} }

func (SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ClassUniqueViolation
	}
	return ClassUnknown
}
