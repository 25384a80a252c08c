// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/abcwallet/abc-core/internal/login"
)

// LobbyRepository persists the short-lived edge-login handshake objects
// created by internal/loginserver's lobby endpoints.
type LobbyRepository interface {
	Create(ctx context.Context, id string, request login.AccountRequest, ttl time.Duration) error
	Fetch(ctx context.Context, id string) (login.Lobby, error)
	Update(ctx context.Context, id string, lobby login.Lobby) error
}

type lobbyRepository struct {
	db *DB
}

// NewLobbyRepository constructs a [LobbyRepository] backed by db.
func NewLobbyRepository(db *DB) LobbyRepository {
	return &lobbyRepository{db: db}
}

func (r *lobbyRepository) Create(ctx context.Context, id string, request login.AccountRequest, ttl time.Duration) error {
	lobby := login.Lobby{AccountRequest: request}
	payload, err := json.Marshal(lobby)
	if err != nil {
		return fmt.Errorf("%w: encoding lobby payload: %v", ErrBuildingSQLQuery, err)
	}

	query, args, err := r.db.builder.Insert("lobbies").
		Columns("id", "payload", "expires_at").
		Values(id, payload, time.Now().Add(ttl)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}
	return nil
}

func (r *lobbyRepository) Fetch(ctx context.Context, id string) (login.Lobby, error) {
	query, args, err := r.db.builder.
		Select("payload", "expires_at").
		From("lobbies").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return login.Lobby{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var payload []byte
	var expiresAt time.Time
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&payload, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return login.Lobby{}, ErrLobbyNotFound
		}
		return login.Lobby{}, fmt.Errorf("%w: %v", ErrScanningRow, err)
	}
	if time.Now().After(expiresAt) {
		return login.Lobby{}, ErrLobbyNotFound
	}

	var lobby login.Lobby
	if err := json.Unmarshal(payload, &lobby); err != nil {
		return login.Lobby{}, fmt.Errorf("%w: decoding lobby payload: %v", ErrScanningRow, err)
	}
	return lobby, nil
}

func (r *lobbyRepository) Update(ctx context.Context, id string, lobby login.Lobby) error {
	payload, err := json.Marshal(lobby)
	if err != nil {
		return fmt.Errorf("%w: encoding lobby payload: %v", ErrBuildingSQLQuery, err)
	}

	query, args, err := r.db.builder.Update("lobbies").
		Set("payload", payload).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrLobbyNotFound
	}
	return nil
}
