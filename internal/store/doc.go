// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the reference auth-server's persistence layer: the
// accounts table (one row per userId, holding everything a credential flow
// reads or writes server-side) and the lobbies table (short-lived edge-login
// handshake state). It supports both a PostgreSQL backend (pgx) and an
// embedded SQLite backend (mattn/go-sqlite3), selected by the driver the
// caller connects with; query building goes through squirrel so the same
// repository code emits the right placeholder syntax for either.
package store
