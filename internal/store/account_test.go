// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
)

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &accountRepository{db: &DB{
		DB:                 db,
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		errorClassificator: NewPostgresErrorClassifier(),
	}}
	return repo, mock
}

func TestAccountRepositoryCreate(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	mock.ExpectExec("INSERT INTO accounts").WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), []byte("user-1"), []byte("pw-auth"),
		login.CarePackage{}, login.LoginPackage{}, crypto.Box{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepositoryCreateAlreadyExists(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	mock.ExpectExec("INSERT INTO accounts").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), []byte("user-1"), []byte("pw-auth"),
		login.CarePackage{}, login.LoginPackage{}, crypto.Box{})
	require.ErrorIs(t, err, ErrAccountAlreadyExists)
}

func TestAccountRepositoryFetchByUserIDNotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM accounts").WillReturnError(sql.ErrNoRows)

	_, err := repo.FetchByUserID(context.Background(), []byte("ghost"))
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountRepositoryFetchByUserIDDecodesPayload(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	payload, err := json.Marshal(accountPayload{
		SyncKeyBox: crypto.Box{EncryptionType: crypto.BoxTypeChaCha20Poly1305},
		OTPKey:     "JBSWY3DPEHPK3PXP",
	})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"user_id", "password_auth", "activated", "pin2_id", "recovery2_id", "payload"}).
		AddRow([]byte("user-1"), []byte("pw-auth"), true, nil, nil, payload)
	mock.ExpectQuery("SELECT (.+) FROM accounts").WillReturnRows(rows)

	acct, err := repo.FetchByUserID(context.Background(), []byte("user-1"))
	require.NoError(t, err)
	require.True(t, acct.Activated)
	require.Equal(t, "JBSWY3DPEHPK3PXP", acct.OTPKey)
	require.Equal(t, crypto.BoxTypeChaCha20Poly1305, acct.SyncKeyBox.EncryptionType)
}

func TestAccountRepositoryAppendKeyBoxMergesPayload(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	existing, err := json.Marshal(accountPayload{KeyBoxes: []crypto.Box{{EncryptionType: crypto.BoxTypeChaCha20Poly1305}}})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT payload FROM accounts").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(existing))
	mock.ExpectExec("UPDATE accounts").WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.AppendKeyBox(context.Background(), []byte("user-1"), crypto.Box{EncryptionType: crypto.BoxTypeChaCha20Poly1305})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepositoryDisableOTPNotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	mock.ExpectQuery("SELECT payload FROM accounts").WillReturnError(sql.ErrNoRows)

	err := repo.DisableOTP(context.Background(), []byte("ghost"))
	require.ErrorIs(t, err, ErrAccountNotFound)
}
