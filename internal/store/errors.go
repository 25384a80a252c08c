// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrAccountAlreadyExists is returned when a create attempts to insert
	// a userId, pin2Id, pinAuthId, or recovery2Id that is already in use.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrAccountNotFound is returned when a lookup by userId, pin2Id,
	// pinAuthId, or recovery2Id matches no row.
	ErrAccountNotFound = errors.New("account not found")

	// ErrLobbyNotFound is returned when a lobby ID matches no row, or the
	// matching row's expires_at has already passed.
	ErrLobbyNotFound = errors.New("lobby not found or expired")
)

// Low-level database operation errors, returned (or wrapped) when a SQL
// operation fails before any domain logic can be applied.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("error executing sql statement")
	ErrScanningRow        = errors.New("error scanning row")
)
