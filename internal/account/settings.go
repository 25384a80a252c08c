// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package account

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
)

// Settings is the subset of an account's settings file that belongs to
// THE CORE: PIN/auto-logout security policy and language. Everything the
// original settings file also carried — payment-request labeling
// (name/nickname), spend limits, bitcoin denomination, exchange rate
// source, number formatting, and a Bitcoin node override list — is
// wallet-application personalization or Bitcoin-network configuration, not
// auth or key custody, so it has no home here.
type Settings struct {
	// PIN is the user's current numeric login PIN, tracked here only so a
	// settings update can tell whether the PIN changed and needs syncing
	// into the login package's PIN v2 credential.
	PIN string `json:"pin,omitempty"`

	DisablePINLogin         bool `json:"disablePinLogin"`
	DisableFingerprintLogin bool `json:"disableFingerprintLogin"`
	PINLoginCount           int  `json:"pinLoginCount"`

	SecondsAutoLogout int `json:"secondsAutoLogout"`

	RecoveryReminderCount int `json:"recoveryReminderCount"`

	Language string `json:"language,omitempty"`
}

// defaultSettings mirrors the original defaults: auto-logout after an hour,
// PIN login enabled, no language override (client picks the system
// locale).
func defaultSettings() Settings {
	return Settings{
		SecondsAutoLogout: 3600,
	}
}

func settingsFile(paths login.AccountPaths) string {
	return filepath.Join(paths.Dir, "Settings.json")
}

func loadSettings(paths login.AccountPaths, l *login.Login) (*Settings, error) {
	data, err := os.ReadFile(settingsFile(paths))
	if os.IsNotExist(err) {
		s := defaultSettings()
		return &s, nil
	}
	if err != nil {
		return nil, abcerr.Wrap(abcerr.FileReadError, err, "reading settings file")
	}

	var box crypto.Box
	if err := json.Unmarshal(data, &box); err != nil {
		return nil, abcerr.Wrap(abcerr.JsonError, err, "decoding settings box")
	}
	plaintext, err := box.Decrypt(l.DataKey())
	if err != nil {
		return nil, abcerr.Wrap(abcerr.DecryptFailure, err, "decrypting settings")
	}

	var s Settings
	if err := json.Unmarshal(plaintext, &s); err != nil {
		return nil, abcerr.Wrap(abcerr.JsonError, err, "decoding settings")
	}
	return &s, nil
}

func saveSettings(paths login.AccountPaths, l *login.Login, s Settings) error {
	plaintext, err := json.Marshal(s)
	if err != nil {
		return abcerr.Wrap(abcerr.JsonError, err, "encoding settings")
	}
	box, err := crypto.EncryptBox(plaintext, l.DataKey())
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting settings")
	}
	data, err := json.Marshal(box)
	if err != nil {
		return abcerr.Wrap(abcerr.JsonError, err, "encoding settings box")
	}
	if err := os.WriteFile(settingsFile(paths), data, 0o600); err != nil {
		return abcerr.Wrap(abcerr.FileOpenError, err, "writing settings file")
	}
	return nil
}

// SaveSettings persists next, then syncs the PIN v2 credential: disabling PIN
// login removes an existing credential entirely via login.LoginPin2Delete,
// and otherwise a non-empty PIN that differs from the previously saved one
// provisions or rotates it via login.LoginPin2Set.
func (a *Account) SaveSettings(ctx context.Context, next Settings) error {
	paths := a.login.Paths()
	pinChanged := next.PIN != "" && next.PIN != a.Settings.PIN

	if err := saveSettings(paths, a.login, next); err != nil {
		return err
	}

	switch {
	case next.DisablePINLogin && login.Pin2Exists(a.login):
		if err := login.LoginPin2Delete(ctx, a.login); err != nil {
			return err
		}
	case pinChanged && !next.DisablePINLogin:
		if err := login.LoginPin2Set(ctx, a.login, next.PIN); err != nil {
			return err
		}
	}

	a.Settings = &next
	return nil
}
