// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import "github.com/abcwallet/abc-core/internal/otp"

// AuthJSON is the outgoing request body shared by every authenticated
// server endpoint. Every builder embeds the caller's current TOTP code
// under "otp" whenever an OTP key is installed.
type AuthJSON struct {
	UserID         []byte   `json:"userId,omitempty"`
	PasswordAuth   []byte   `json:"passwordAuth,omitempty"`
	Pin2ID         []byte   `json:"pin2Id,omitempty"`
	Pin2Auth       []byte   `json:"pin2Auth,omitempty"`
	Recovery2ID    []byte   `json:"recovery2Id,omitempty"`
	Recovery2Auth  [][]byte `json:"recovery2Auth,omitempty"`
	OTP            string   `json:"otp,omitempty"`
}

func withOTP(auth AuthJSON, key *otp.Key) AuthJSON {
	if key != nil {
		auth.OTP = key.TOTP(otp.DefaultTimeStep, otp.DefaultDigits)
	}
	return auth
}

// UserIDSet builds the identity-only form used by endpoints that merely
// need to resolve the account (e.g. fetching the carePackage).
func UserIDSet(store *Store) AuthJSON {
	return withOTP(AuthJSON{UserID: store.UserID()}, store.OtpKey())
}

// PasswordSet builds the password-login authenticator form.
func PasswordSet(store *Store, passwordAuth []byte) AuthJSON {
	return withOTP(AuthJSON{UserID: store.UserID(), PasswordAuth: passwordAuth}, store.OtpKey())
}

// Pin2Set builds the PIN v2 authenticator form. PIN v2 logins are
// identified by pin2Id alone; no userId is sent.
func Pin2Set(store *Store, pin2ID, pin2Auth []byte) AuthJSON {
	return withOTP(AuthJSON{Pin2ID: pin2ID, Pin2Auth: pin2Auth}, store.OtpKey())
}

// Recovery2Set builds the recovery v2 authenticator form. recovery2Auth is
// nil for the question-fetch call, which authenticates by recovery2Id alone.
func Recovery2Set(store *Store, recovery2ID []byte, recovery2Auth [][]byte) AuthJSON {
	return withOTP(AuthJSON{Recovery2ID: recovery2ID, Recovery2Auth: recovery2Auth}, store.OtpKey())
}

// LoginSet builds the all-purpose authenticated-session form used once a
// Login exists: userId + passwordAuth + otp.
func LoginSet(l *Login) AuthJSON {
	return withOTP(AuthJSON{UserID: l.store.UserID(), PasswordAuth: l.passwordAuth}, l.store.OtpKey())
}
