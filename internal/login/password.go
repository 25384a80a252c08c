// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"context"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
)

// LoginPassword authenticates store with password, trying the on-disk
// packages first and only falling back to the server if no local package
// exists or the local passwordBox fails to decrypt.
func LoginPassword(ctx context.Context, server ServerClient, store *Store, password string) (*Login, error) {
	if l, err := loginPasswordOffline(ctx, server, store, password); err == nil {
		return l, nil
	}
	return loginPasswordOnline(ctx, server, store, password)
}

func loginPasswordOffline(ctx context.Context, server ServerClient, store *Store, password string) (*Login, error) {
	paths, err := store.paths(false)
	if err != nil {
		return nil, err
	}
	care, err := loadCarePackage(paths)
	if err != nil {
		return nil, err
	}
	pkg, err := loadLoginPackage(paths)
	if err != nil {
		return nil, err
	}
	if pkg.PasswordBox == nil {
		return nil, abcerr.New(abcerr.BadPassword, "account has no password login path")
	}

	passwordKey, err := care.PasswordKeySNRP.Hash([]byte(store.username + password))
	if err != nil {
		return nil, abcerr.Wrap(abcerr.ScryptError, err, "deriving passwordKey")
	}

	dataKey, err := pkg.PasswordBox.Decrypt(passwordKey)
	if err != nil {
		return nil, abcerr.New(abcerr.BadPassword, "incorrect password")
	}

	return CreateOffline(ctx, server, store, dataKey)
}

func loginPasswordOnline(ctx context.Context, server ServerClient, store *Store, password string) (*Login, error) {
	passwordAuth, err := store.ctx.ServerSNRP.Hash([]byte(store.username + password))
	if err != nil {
		return nil, abcerr.Wrap(abcerr.ScryptError, err, "deriving passwordAuth")
	}

	reply, err := server.Login(ctx, PasswordSet(store, passwordAuth))
	if err != nil {
		return nil, err
	}

	passwordKey, err := reply.CarePackage.PasswordKeySNRP.Hash([]byte(store.username + password))
	if err != nil {
		return nil, abcerr.Wrap(abcerr.ScryptError, err, "deriving passwordKey")
	}

	if reply.LoginPackage.PasswordBox == nil {
		return nil, abcerr.New(abcerr.BadPassword, "account has no password login path")
	}
	dataKey, err := reply.LoginPackage.PasswordBox.Decrypt(passwordKey)
	if err != nil {
		return nil, abcerr.New(abcerr.BadPassword, "incorrect password")
	}

	return CreateOnline(ctx, server, store, dataKey, reply)
}

// ChangePassword re-derives and re-encrypts the password credential and
// pushes it to the server before overwriting the on-disk packages, so a
// partial failure never leaves disk ahead of the server.
func ChangePassword(ctx context.Context, l *Login, newPassword string) error {
	passwordKeySNRP, err := crypto.NewClientSNRP(l.store.ctx.Calibration)
	if err != nil {
		return abcerr.Wrap(abcerr.ScryptError, err, "generating passwordKeySnrp")
	}

	newPasswordAuth, err := l.store.ctx.ServerSNRP.Hash([]byte(l.store.username + newPassword))
	if err != nil {
		return abcerr.Wrap(abcerr.ScryptError, err, "deriving passwordAuth")
	}
	passwordKey, err := passwordKeySNRP.Hash([]byte(l.store.username + newPassword))
	if err != nil {
		return abcerr.Wrap(abcerr.ScryptError, err, "deriving passwordKey")
	}

	passwordBox, err := crypto.EncryptBox(l.dataKey, passwordKey)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting passwordBox")
	}
	passwordAuthBox, err := crypto.EncryptBox(newPasswordAuth, l.dataKey)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting passwordAuthBox")
	}

	care, err := loadCarePackage(l.paths)
	if err != nil {
		return err
	}
	care.PasswordKeySNRP = passwordKeySNRP

	pkg, err := loadLoginPackage(l.paths)
	if err != nil {
		return err
	}
	pkg.PasswordBox = &passwordBox
	pkg.PasswordAuthBox = &passwordAuthBox

	if err := l.server.UpdatePassword(ctx, LoginSet(l), care, pkg); err != nil {
		return err
	}

	l.passwordAuth = newPasswordAuth
	if err := saveCarePackage(l.paths, care); err != nil {
		return err
	}
	return saveLoginPackage(l.paths, pkg)
}
