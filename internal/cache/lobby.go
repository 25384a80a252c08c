// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// lobbyTTL bounds how long this process remembers an outstanding
// edge-login request's ephemeral private key. It is deliberately generous
// relative to how long a user takes to approve a request on a second
// device; an unapproved request simply falls out of the cache.
const lobbyTTL = 10 * time.Minute

// LobbyCache remembers the ephemeral private key RequestEdgeLogin returned
// for each lobby this process has opened, so repeated PollEdgeLogin calls
// (from, say, a CLI loop or a UI polling timer) don't need the caller to
// thread the key through by hand.
type LobbyCache struct {
	keys *gocache.Cache
}

// NewLobbyCache returns an empty LobbyCache whose entries expire after
// lobbyTTL.
func NewLobbyCache() *LobbyCache {
	return &LobbyCache{keys: gocache.New(lobbyTTL, lobbyTTL/2)}
}

// Put remembers privateKey under lobbyID.
func (lc *LobbyCache) Put(lobbyID string, privateKey []byte) {
	lc.keys.Set(lobbyID, privateKey, gocache.DefaultExpiration)
}

// Get returns the private key remembered for lobbyID, if it hasn't
// expired.
func (lc *LobbyCache) Get(lobbyID string) ([]byte, bool) {
	v, ok := lc.keys.Get(lobbyID)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Forget removes lobbyID, e.g. once its edge-login has completed.
func (lc *LobbyCache) Forget(lobbyID string) {
	lc.keys.Delete(lobbyID)
}
