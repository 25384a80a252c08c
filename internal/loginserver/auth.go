// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/abcwallet/abc-core/internal/store"
)

// resolveLogin authenticates auth against whichever credential it carries,
// the same three-way dispatch /v2/login can be sent: password
// (login.PasswordSet/LoginSet), PIN v2 (login.Pin2Set), or recovery v2
// (login.Recovery2Set). Exactly one identity field is ever set by those
// builders, so the first match wins.
func (h *Handler) resolveLogin(ctx context.Context, auth login.AuthJSON) (store.Account, error) {
	switch {
	case auth.UserID != nil:
		return h.authenticatePassword(ctx, auth.UserID, auth.PasswordAuth)
	case auth.Pin2ID != nil:
		return h.authenticatePin2(ctx, auth.Pin2ID, auth.Pin2Auth)
	case auth.Recovery2ID != nil:
		return h.authenticateRecovery2(ctx, auth.Recovery2ID, auth.Recovery2Auth)
	default:
		return store.Account{}, abcerr.New(abcerr.AccountDoesNotExist, "no credential supplied")
	}
}

func (h *Handler) authenticatePassword(ctx context.Context, userID, passwordAuth []byte) (store.Account, error) {
	acct, err := h.repos.Accounts.FetchByUserID(ctx, userID)
	if err != nil {
		return store.Account{}, mapFetchErr(err)
	}
	if !bytesEqual(acct.PasswordAuth, passwordAuth) {
		return store.Account{}, abcerr.New(abcerr.BadPassword, "invalid password")
	}
	return acct, nil
}

func (h *Handler) authenticatePin2(ctx context.Context, pin2ID, pin2Auth []byte) (store.Account, error) {
	acct, err := h.repos.Accounts.FetchByPin2ID(ctx, pin2ID)
	if err != nil {
		return store.Account{}, mapFetchErr(err)
	}
	if !bytesEqual(acct.Pin2Auth, pin2Auth) {
		return store.Account{}, abcerr.New(abcerr.BadPassword, "invalid PIN")
	}
	return acct, nil
}

// authenticateRecovery2 resolves by recovery2ID alone when answers is nil —
// Recovery2Questions fetches the question list without proving any answer —
// and additionally requires every per-question authenticator to match when
// answers is supplied.
func (h *Handler) authenticateRecovery2(ctx context.Context, recovery2ID []byte, answers [][]byte) (store.Account, error) {
	acct, err := h.repos.Accounts.FetchByRecovery2ID(ctx, recovery2ID)
	if err != nil {
		return store.Account{}, mapFetchErr(err)
	}
	if answers == nil {
		return acct, nil
	}
	if len(answers) != len(acct.Recovery2Auth) {
		return store.Account{}, abcerr.New(abcerr.InvalidAnswers, "incorrect recovery answers")
	}
	for i, want := range acct.Recovery2Auth {
		if !bytesEqual(want, answers[i]) {
			return store.Account{}, abcerr.New(abcerr.InvalidAnswers, "incorrect recovery answers")
		}
	}
	return acct, nil
}

// requireOTP gates an already-authenticated account behind its configured
// TOTP, if any. An account with no OTP key accepts the call unconditionally.
func (h *Handler) requireOTP(acct store.Account, code string) error {
	if checkOTP(acct.OTPKey, code) {
		return nil
	}
	token, readyAt := h.pendingOTPReset(acct.UserID)
	return (&abcerr.Error{Kind: abcerr.InvalidOTP, Message: "invalid OTP"}).
		WithOTPReset(token, readyAt)
}

func mapFetchErr(err error) error {
	if errors.Is(err, store.ErrAccountNotFound) {
		return abcerr.New(abcerr.AccountDoesNotExist, "account not found")
	}
	return abcerr.Wrap(abcerr.ServerError, err, "store error")
}

// bytesEqual is a constant-time comparison: passwordAuth/pin2Auth/
// recovery2Auth are authenticators an attacker must not be able to guess
// byte-by-byte via response timing. crypto/subtle is the standard
// library's purpose-built tool for this; nothing in the example corpus
// reaches for a third-party library to do it instead.
func bytesEqual(a, b []byte) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
}
