// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"

	"github.com/abcwallet/abc-core/internal/login"
)

func newTestLobbyRepo(t *testing.T) (*lobbyRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &lobbyRepository{db: &DB{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}}, mock
}

func TestLobbyRepositoryCreate(t *testing.T) {
	repo, mock := newTestLobbyRepo(t)
	mock.ExpectExec("INSERT INTO lobbies").WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), "lobby-1",
		login.AccountRequest{Type: login.WalletRepoType, DisplayName: "my phone"}, 5*time.Minute)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLobbyRepositoryFetchExpired(t *testing.T) {
	repo, mock := newTestLobbyRepo(t)

	payload, err := json.Marshal(login.Lobby{AccountRequest: login.AccountRequest{DisplayName: "old phone"}})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT payload, expires_at FROM lobbies").
		WillReturnRows(sqlmock.NewRows([]string{"payload", "expires_at"}).
			AddRow(payload, time.Now().Add(-time.Minute)))

	_, err = repo.Fetch(context.Background(), "lobby-1")
	require.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestLobbyRepositoryFetchNotFound(t *testing.T) {
	repo, mock := newTestLobbyRepo(t)
	mock.ExpectQuery("SELECT payload, expires_at FROM lobbies").WillReturnError(sql.ErrNoRows)

	_, err := repo.Fetch(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestLobbyRepositoryUpdate(t *testing.T) {
	repo, mock := newTestLobbyRepo(t)
	mock.ExpectExec("UPDATE lobbies").WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "lobby-1", login.Lobby{
		AccountRequest: login.AccountRequest{DisplayName: "my phone"},
		ReplyKey:       []byte("reply-key"),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLobbyRepositoryUpdateNotFound(t *testing.T) {
	repo, mock := newTestLobbyRepo(t)
	mock.ExpectExec("UPDATE lobbies").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), "ghost", login.Lobby{})
	require.ErrorIs(t, err, ErrLobbyNotFound)
}
