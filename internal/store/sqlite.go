// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/abcwallet/abc-core/internal/config"
	"github.com/abcwallet/abc-core/internal/logger"
)

// NewConnectSQLite opens a SQLite connection to the file specified by
// cfg.DSN, creating the file if it does not yet exist. It verifies
// reachability with a ping and returns a [DB] wired to a
// [SQLiteErrorClassifier] and the Question placeholder format.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("store: creating sqlite file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening connection to database")
		return nil, fmt.Errorf("store: opening sqlite connection: %w", err)
	}

	// SQLite allows only one writer at a time; a pool just serializes
	// behind lock contention the driver would hit anyway.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting to database (ping)")
		return nil, fmt.Errorf("store: pinging sqlite: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Question),
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
	}, nil
}

func createLocalDBFileIfNotExists(dsn string) error {
	path := sqliteFilePath(dsn)
	if path == ":memory:" || path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating sqlite file %q: %w", path, err)
		}
		return f.Close()
	}
	return nil
}

// sqliteFilePath strips a "file:" prefix and any query parameters from dsn,
// matching the subset of the sqlite3 driver's DSN syntax abc-core uses.
func sqliteFilePath(dsn string) string {
	path := dsn
	if len(path) >= 5 && path[:5] == "file:" {
		path = path[5:]
	}
	for i := 0; i < len(path); i++ {
		if path[i] == '?' {
			return path[:i]
		}
	}
	return path
}
