// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// Repositories bundles every repository the reference auth-server's
// handlers are built against.
type Repositories struct {
	Accounts    AccountRepository
	Lobbies     LobbyRepository
	PinPackages PinPackageRepository
}

// NewRepositories constructs a [Repositories] backed by db.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Accounts:    NewAccountRepository(db),
		Lobbies:     NewLobbyRepository(db),
		PinPackages: NewPinPackageRepository(db),
	}
}
