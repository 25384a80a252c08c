// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache implements the process-global, mutex-guarded credential
// cache: at most one (LoginStore, Login, Account) triple held at a time,
// keyed implicitly by username, so a host application can call any
// credential or account operation without re-authenticating on every call.
package cache

import (
	"context"
	"sync"

	"github.com/abcwallet/abc-core/internal/account"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/abcwallet/abc-core/internal/procctx"
)

// Cache holds the three mutex-guarded slots: the current LoginStore, the
// current Login (if authenticated), and its Account. Account.Wallets is
// itself the live wallet map the original design keeps as a fourth slot —
// forwarding to it here means Wallets never drifts from what WalletList
// actually has on disk. All slots are cleared together whenever a
// different username is requested.
type Cache struct {
	mu sync.Mutex

	store   *login.Store
	login   *login.Login
	account *account.Account
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{}
}

func (c *Cache) clearLocked() {
	c.store = nil
	c.login = nil
	c.account = nil
}

// Logout clears every cached slot.
func (c *Cache) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

// Username returns the username of the currently cached store, or "" if
// nothing is cached.
func (c *Cache) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return ""
	}
	return c.store.Username()
}

// ensureStore returns the cached store if its normalized username matches
// username; otherwise every slot is cleared and a fresh store is built and
// cached in its place.
func (c *Cache) ensureStore(pctx *procctx.Context, username string) (*login.Store, error) {
	normalized, err := login.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store != nil && c.store.Username() == normalized {
		return c.store, nil
	}

	store, err := login.New(pctx, username)
	if err != nil {
		return nil, err
	}
	c.clearLocked()
	c.store = store
	return store, nil
}

func (c *Cache) cached() (*login.Login, *account.Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.login, c.account
}

func (c *Cache) install(l *login.Login, a *account.Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.login = l
	c.account = a
}

// Wallets returns the cached account's current wallet summaries, or nil if
// no account is cached.
func (c *Cache) Wallets() []account.WalletListItem {
	c.mu.Lock()
	a := c.account
	c.mu.Unlock()
	if a == nil {
		return nil
	}
	return a.Wallets.List()
}

// withLogin ensures a store for username, returns the already-cached Login
// and Account if one exists, and otherwise runs perform to produce a fresh
// Login, opens its Account, and caches both.
func (c *Cache) withLogin(pctx *procctx.Context, username string, perform func(store *login.Store) (*login.Login, error)) (*login.Login, *account.Account, error) {
	store, err := c.ensureStore(pctx, username)
	if err != nil {
		return nil, nil, err
	}
	if l, a := c.cached(); l != nil {
		return l, a, nil
	}

	l, err := perform(store)
	if err != nil {
		return nil, nil, err
	}
	a, err := account.Open(l)
	if err != nil {
		return nil, nil, err
	}
	c.install(l, a)
	return l, a, nil
}

// LoginPassword authenticates (or reuses a cached session for) username
// with password.
func (c *Cache) LoginPassword(ctx context.Context, pctx *procctx.Context, server login.ServerClient, username, password string) (*login.Login, *account.Account, error) {
	return c.withLogin(pctx, username, func(store *login.Store) (*login.Login, error) {
		return login.LoginPassword(ctx, server, store, password)
	})
}

// LoginPin authenticates (or reuses a cached session for) username with
// pin, transparently upgrading a v1 PIN package to v2 as login.LoginPin
// does.
func (c *Cache) LoginPin(ctx context.Context, pctx *procctx.Context, server login.ServerClient, username, pin string) (*login.Login, *account.Account, error) {
	return c.withLogin(pctx, username, func(store *login.Store) (*login.Login, error) {
		return login.LoginPin(ctx, server, store, pin)
	})
}

// LoginRecovery authenticates with the legacy v1 recovery-question answers.
func (c *Cache) LoginRecovery(ctx context.Context, pctx *procctx.Context, server login.ServerClient, username string, answers []string) (*login.Login, *account.Account, error) {
	return c.withLogin(pctx, username, func(store *login.Store) (*login.Login, error) {
		return login.LoginRecovery(ctx, server, store, answers)
	})
}

// LoginRecovery2 authenticates with a v2 recovery2Key and its answers.
func (c *Cache) LoginRecovery2(ctx context.Context, pctx *procctx.Context, server login.ServerClient, username string, recovery2Key []byte, answers []string) (*login.Login, *account.Account, error) {
	return c.withLogin(pctx, username, func(store *login.Store) (*login.Login, error) {
		return login.LoginRecovery2(ctx, server, store, recovery2Key, answers)
	})
}

// LoginKey installs a Login built directly from an already-recovered
// dataKey, such as the one an edge-login poll returns: holding a valid
// dataKey is itself the credential, so no password/PIN/recovery check runs
// here. It still fetches the account's current CarePackage/LoginPackage/
// keyBoxes from the server so the on-disk state is populated like any
// other successful login.
func (c *Cache) LoginKey(ctx context.Context, pctx *procctx.Context, server login.ServerClient, username string, dataKey []byte) (*login.Login, *account.Account, error) {
	return c.withLogin(pctx, username, func(store *login.Store) (*login.Login, error) {
		reply, err := server.Login(ctx, login.UserIDSet(store))
		if err != nil {
			return nil, err
		}
		return login.CreateOnline(ctx, server, store, dataKey, reply)
	})
}

// LoginNew provisions a brand-new account for username and caches it.
func (c *Cache) LoginNew(ctx context.Context, pctx *procctx.Context, server login.ServerClient, username, password string) (*login.Login, *account.Account, error) {
	return c.withLogin(pctx, username, func(store *login.Store) (*login.Login, error) {
		return login.CreateNew(ctx, server, store, password)
	})
}
