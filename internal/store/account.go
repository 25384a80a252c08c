// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
)

// accountPayload is the part of an account row that has no lookup key of
// its own: it is read and written as a single JSON document rather than as
// individual columns, the way the teacher repository keeps a vault item's
// encrypted body in one "data" column alongside its indexable metadata.
type accountPayload struct {
	CarePackage  login.CarePackage  `json:"carePackage"`
	LoginPackage login.LoginPackage `json:"loginPackage"`
	KeyBoxes     []crypto.Box       `json:"keyBoxes"`
	SyncKeyBox   crypto.Box         `json:"syncKeyBox"`
	RootKeyBox   *crypto.Box        `json:"rootKeyBox,omitempty"`
	MnemonicBox  *crypto.Box        `json:"mnemonicBox,omitempty"`
	DataKeyBox   *crypto.Box        `json:"dataKeyBox,omitempty"`

	Pin2Auth   []byte      `json:"pin2Auth,omitempty"`
	Pin2Box    *crypto.Box `json:"pin2Box,omitempty"`
	Pin2KeyBox *crypto.Box `json:"pin2KeyBox,omitempty"`

	Recovery2Auth [][]byte    `json:"recovery2Auth,omitempty"`
	Recovery2Box  *crypto.Box `json:"recovery2Box,omitempty"`
	Question2Box  *crypto.Box `json:"question2Box,omitempty"`

	OTPKey            string `json:"otpKey,omitempty"`
	OTPTimeoutSeconds int64  `json:"otpTimeoutSeconds,omitempty"`
}

// Account is an auth server account row, scanned from the accounts table.
type Account struct {
	UserID       []byte
	PasswordAuth []byte
	Activated    bool
	Pin2ID       []byte
	Recovery2ID  []byte

	accountPayload
}

// AccountRepository is the server-side persistence contract every
// credential-flow endpoint in internal/loginserver is built on.
type AccountRepository interface {
	Create(ctx context.Context, userID, passwordAuth []byte, care login.CarePackage, pkg login.LoginPackage, syncKeyBox crypto.Box) error
	Activate(ctx context.Context, userID []byte) error

	FetchByUserID(ctx context.Context, userID []byte) (Account, error)
	FetchByPin2ID(ctx context.Context, pin2ID []byte) (Account, error)
	FetchByRecovery2ID(ctx context.Context, recovery2ID []byte) (Account, error)

	UpdatePassword(ctx context.Context, userID []byte, passwordAuth []byte, care login.CarePackage, pkg login.LoginPackage) error
	Upgrade(ctx context.Context, userID []byte, rootKeyBox, mnemonicBox, dataKeyBox crypto.Box) error
	AppendKeyBox(ctx context.Context, userID []byte, keyBox crypto.Box) error

	SetPin2(ctx context.Context, userID, pin2ID, pin2Auth []byte, pin2Box, pin2KeyBox crypto.Box) error
	DeletePin2(ctx context.Context, userID []byte) error

	SetRecovery2(ctx context.Context, userID, recovery2ID []byte, recovery2Auth [][]byte, recovery2Box, question2Box crypto.Box) error
	DeleteRecovery2(ctx context.Context, userID []byte) error

	SetOTP(ctx context.Context, userID []byte, keyBase32 string, timeoutSeconds int64) error
	DisableOTP(ctx context.Context, userID []byte) error

	SaveDebugLog(ctx context.Context, userID []byte, log []byte) error
}

type accountRepository struct {
	db *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by db.
func NewAccountRepository(db *DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, userID, passwordAuth []byte, care login.CarePackage, pkg login.LoginPackage, syncKeyBox crypto.Box) error {
	payload, err := json.Marshal(accountPayload{CarePackage: care, LoginPackage: pkg, SyncKeyBox: syncKeyBox})
	if err != nil {
		return fmt.Errorf("%w: encoding account payload: %v", ErrBuildingSQLQuery, err)
	}

	query, args, err := r.db.builder.Insert("accounts").
		Columns("user_id", "password_auth", "activated", "payload").
		Values(userID, passwordAuth, false, payload).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.errorClassificator.Classify(err) == ClassUniqueViolation {
			return ErrAccountAlreadyExists
		}
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}
	return nil
}

func (r *accountRepository) Activate(ctx context.Context, userID []byte) error {
	return r.update(ctx, sq.Eq{"user_id": userID}, sq.Eq{"activated": true})
}

func (r *accountRepository) FetchByUserID(ctx context.Context, userID []byte) (Account, error) {
	return r.fetchOne(ctx, sq.Eq{"user_id": userID})
}

func (r *accountRepository) FetchByPin2ID(ctx context.Context, pin2ID []byte) (Account, error) {
	return r.fetchOne(ctx, sq.Eq{"pin2_id": pin2ID})
}

func (r *accountRepository) FetchByRecovery2ID(ctx context.Context, recovery2ID []byte) (Account, error) {
	return r.fetchOne(ctx, sq.Eq{"recovery2_id": recovery2ID})
}

func (r *accountRepository) fetchOne(ctx context.Context, pred sq.Eq) (Account, error) {
	query, args, err := r.db.builder.Select(
		"user_id", "password_auth", "activated", "pin2_id", "recovery2_id", "payload",
	).From("accounts").Where(pred).ToSql()
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var acct Account
	var pin2ID, recovery2ID sql.NullString
	var payload []byte

	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&acct.UserID, &acct.PasswordAuth, &acct.Activated, &pin2ID, &recovery2ID, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrScanningRow, err)
	}

	acct.Pin2ID = []byte(pin2ID.String)
	acct.Recovery2ID = []byte(recovery2ID.String)

	if err := json.Unmarshal(payload, &acct.accountPayload); err != nil {
		return Account{}, fmt.Errorf("%w: decoding account payload: %v", ErrScanningRow, err)
	}
	return acct, nil
}

// update runs a partial UPDATE against the row matched by pred and returns
// [ErrAccountNotFound] if it matches nothing.
func (r *accountRepository) update(ctx context.Context, pred sq.Eq, set map[string]any) error {
	builder := r.db.builder.Update("accounts")
	for col, val := range set {
		builder = builder.Set(col, val)
	}
	query, args, err := builder.Where(pred).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.errorClassificator.Classify(err) == ClassUniqueViolation {
			return ErrAccountAlreadyExists
		}
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// mergePayload loads the current payload for pred, applies mutate, and
// writes it back in the same row. Every operation below that touches only
// part of the JSON payload (a key box, a PIN record, OTP settings) goes
// through this helper rather than hand-writing a JSON-path UPDATE, which
// neither the pgx nor the sqlite3 driver exposes uniformly.
func (r *accountRepository) mergePayload(ctx context.Context, pred sq.Eq, mutate func(*accountPayload)) error {
	query, args, err := r.db.builder.Select("payload").From("accounts").Where(pred).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("%w: %v", ErrScanningRow, err)
	}

	var payload accountPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: decoding account payload: %v", ErrScanningRow, err)
	}
	mutate(&payload)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encoding account payload: %v", ErrBuildingSQLQuery, err)
	}
	return r.update(ctx, pred, map[string]any{"payload": encoded})
}

func (r *accountRepository) UpdatePassword(ctx context.Context, userID []byte, passwordAuth []byte, care login.CarePackage, pkg login.LoginPackage) error {
	pred := sq.Eq{"user_id": userID}
	if err := r.mergePayload(ctx, pred, func(p *accountPayload) {
		p.CarePackage = care
		p.LoginPackage = pkg
	}); err != nil {
		return err
	}
	return r.update(ctx, pred, map[string]any{"password_auth": passwordAuth})
}

func (r *accountRepository) Upgrade(ctx context.Context, userID []byte, rootKeyBox, mnemonicBox, dataKeyBox crypto.Box) error {
	return r.mergePayload(ctx, sq.Eq{"user_id": userID}, func(p *accountPayload) {
		p.RootKeyBox = &rootKeyBox
		p.MnemonicBox = &mnemonicBox
		p.DataKeyBox = &dataKeyBox
	})
}

func (r *accountRepository) AppendKeyBox(ctx context.Context, userID []byte, keyBox crypto.Box) error {
	return r.mergePayload(ctx, sq.Eq{"user_id": userID}, func(p *accountPayload) {
		p.KeyBoxes = append(p.KeyBoxes, keyBox)
	})
}

func (r *accountRepository) SetPin2(ctx context.Context, userID, pin2ID, pin2Auth []byte, pin2Box, pin2KeyBox crypto.Box) error {
	pred := sq.Eq{"user_id": userID}
	if err := r.mergePayload(ctx, pred, func(p *accountPayload) {
		p.Pin2Auth = pin2Auth
		p.Pin2Box = &pin2Box
		p.Pin2KeyBox = &pin2KeyBox
	}); err != nil {
		return err
	}
	return r.update(ctx, pred, map[string]any{"pin2_id": pin2ID})
}

func (r *accountRepository) DeletePin2(ctx context.Context, userID []byte) error {
	pred := sq.Eq{"user_id": userID}
	if err := r.mergePayload(ctx, pred, func(p *accountPayload) {
		p.Pin2Auth = nil
		p.Pin2Box = nil
		p.Pin2KeyBox = nil
	}); err != nil {
		return err
	}
	return r.update(ctx, pred, map[string]any{"pin2_id": nil})
}

func (r *accountRepository) SetRecovery2(ctx context.Context, userID, recovery2ID []byte, recovery2Auth [][]byte, recovery2Box, question2Box crypto.Box) error {
	pred := sq.Eq{"user_id": userID}
	if err := r.mergePayload(ctx, pred, func(p *accountPayload) {
		p.Recovery2Auth = recovery2Auth
		p.Recovery2Box = &recovery2Box
		p.Question2Box = &question2Box
	}); err != nil {
		return err
	}
	return r.update(ctx, pred, map[string]any{"recovery2_id": recovery2ID})
}

func (r *accountRepository) DeleteRecovery2(ctx context.Context, userID []byte) error {
	pred := sq.Eq{"user_id": userID}
	if err := r.mergePayload(ctx, pred, func(p *accountPayload) {
		p.Recovery2Auth = nil
		p.Recovery2Box = nil
		p.Question2Box = nil
	}); err != nil {
		return err
	}
	return r.update(ctx, pred, map[string]any{"recovery2_id": nil})
}

func (r *accountRepository) SetOTP(ctx context.Context, userID []byte, keyBase32 string, timeoutSeconds int64) error {
	return r.mergePayload(ctx, sq.Eq{"user_id": userID}, func(p *accountPayload) {
		p.OTPKey = keyBase32
		p.OTPTimeoutSeconds = timeoutSeconds
	})
}

func (r *accountRepository) DisableOTP(ctx context.Context, userID []byte) error {
	return r.mergePayload(ctx, sq.Eq{"user_id": userID}, func(p *accountPayload) {
		p.OTPKey = ""
		p.OTPTimeoutSeconds = 0
	})
}

func (r *accountRepository) SaveDebugLog(ctx context.Context, userID []byte, log []byte) error {
	return r.update(ctx, sq.Eq{"user_id": userID}, map[string]any{"debug_log": log})
}
