// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package account implements the logged-in, decrypted view of a single
// account: its wallet list and its auth/security-relevant settings. It sits
// directly on top of internal/login.Login and never touches the network
// itself — syncing the account's repository directory against a remote is
// out of scope here, the same way it is out of scope for the credential
// flows in internal/login.
package account

import (
	"os"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/login"
)

// Account is the decrypted, logged-in view of one account directory: its
// dataKey, its wallet catalog, and its settings file.
type Account struct {
	login *login.Login

	Wallets  *WalletList
	Settings *Settings
}

// Open loads the Account for an already-authenticated l: it ensures the
// Wallets directory exists, loads the wallet list, and loads (or
// defaults) the settings file. It performs no network I/O.
func Open(l *login.Login) (*Account, error) {
	paths := l.Paths()

	if err := os.MkdirAll(paths.WalletsDir(), 0o700); err != nil {
		return nil, abcerr.Wrap(abcerr.SysError, err, "creating wallets directory")
	}

	wallets, err := loadWalletList(paths.WalletsDir(), l.DataKey())
	if err != nil {
		return nil, err
	}

	settings, err := loadSettings(paths, l)
	if err != nil {
		return nil, err
	}

	return &Account{login: l, Wallets: wallets, Settings: settings}, nil
}

// Login returns the underlying authenticated session.
func (a *Account) Login() *login.Login { return a.login }
