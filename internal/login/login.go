// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"context"
	"encoding/json"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/tyler-smith/go-bip39"
)

// WalletRepoType is the keyBox type string for an account's primary sync
// repository, the one type every account implicitly owns even before any
// keyBox has been written for it.
const WalletRepoType = "account:repo:co.airbitz.wallet"

const (
	dataKeySize  = 32
	syncKeySize  = 20
	rootKeySize  = 32
)

// Login is the in-memory post-authentication state for an account: the
// dataKey that unlocks everything, the optional rootKey, the recoverable
// server authenticator, and the on-disk paths and key catalog.
type Login struct {
	store  *Store
	server ServerClient

	paths AccountPaths

	dataKey      []byte
	rootKey      []byte
	passwordAuth []byte
}

// Store returns the LoginStore this Login was built from.
func (l *Login) Store() *Store { return l.store }

// Paths returns the on-disk account directory this Login was loaded from.
func (l *Login) Paths() AccountPaths { return l.paths }

// DataKey returns the 32-byte symmetric key that unlocks the account.
func (l *Login) DataKey() []byte { return append([]byte(nil), l.dataKey...) }

// RootKey returns the BIP-39-derived master seed, or nil if rootKeyUpgrade
// has not yet run.
func (l *Login) RootKey() []byte {
	if l.rootKey == nil {
		return nil
	}
	return append([]byte(nil), l.rootKey...)
}

// PasswordAuth returns the server authenticator derived from or recovered
// alongside the password, or nil if the account has no password.
func (l *Login) PasswordAuth() []byte {
	if l.passwordAuth == nil {
		return nil
	}
	return append([]byte(nil), l.passwordAuth...)
}

// CreateNew provisions a brand-new account for store: it generates a fresh
// dataKey, builds the CarePackage/LoginPackage around password (which may
// be empty, in which case passwordAuth is random and the account has no
// password login path), posts /v1/account/create, persists the packages,
// upgrades the rootKey, then activates the account.
func CreateNew(ctx context.Context, server ServerClient, store *Store, password string) (*Login, error) {
	dataKey, err := crypto.RandomBytes(dataKeySize)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.SysError, err, "generating dataKey")
	}

	passwordKeySNRP, err := crypto.NewClientSNRP(store.ctx.Calibration)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.ScryptError, err, "generating passwordKeySnrp")
	}

	var passwordAuth []byte
	if password != "" {
		passwordAuth, err = store.ctx.ServerSNRP.Hash([]byte(store.username + password))
	} else {
		passwordAuth, err = crypto.RandomBytes(dataKeySize)
	}
	if err != nil {
		return nil, abcerr.Wrap(abcerr.ScryptError, err, "deriving passwordAuth")
	}

	passwordKey, err := passwordKeySNRP.Hash([]byte(store.username + password))
	if err != nil {
		return nil, abcerr.Wrap(abcerr.ScryptError, err, "deriving passwordKey")
	}

	passwordBox, err := crypto.EncryptBox(dataKey, passwordKey)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.EncryptError, err, "encrypting passwordBox")
	}
	passwordAuthBox, err := crypto.EncryptBox(passwordAuth, dataKey)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.EncryptError, err, "encrypting passwordAuthBox")
	}

	syncKey, err := crypto.RandomBytes(syncKeySize)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.SysError, err, "generating syncKey")
	}
	syncKeyBox, err := crypto.EncryptBox(syncKey, dataKey)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.EncryptError, err, "encrypting syncKeyBox")
	}

	care := CarePackage{PasswordKeySNRP: passwordKeySNRP}
	pkg := LoginPackage{
		PasswordBox:     &passwordBox,
		PasswordAuthBox: &passwordAuthBox,
		SyncKeyBox:      syncKeyBox,
	}

	if err := server.CreateAccount(ctx, store.UserID(), passwordAuth, care, pkg, syncKeyBox); err != nil {
		return nil, err
	}

	paths, err := store.paths(true)
	if err != nil {
		return nil, err
	}
	if err := saveCarePackage(paths, care); err != nil {
		return nil, err
	}
	if err := saveLoginPackage(paths, pkg); err != nil {
		return nil, err
	}
	if err := saveLoginStash(paths, LoginStash{SyncKeyBox: syncKeyBox}); err != nil {
		return nil, err
	}

	l := &Login{
		store:        store,
		server:       server,
		paths:        paths,
		dataKey:      dataKey,
		passwordAuth: passwordAuth,
	}

	if err := l.rootKeyUpgrade(ctx); err != nil {
		return nil, err
	}

	if err := server.ActivateAccount(ctx, store.UserID()); err != nil {
		return nil, err
	}

	return l, nil
}

// CreateOffline rebuilds a Login purely from on-disk state, given a dataKey
// already recovered by some credential flow. It recovers passwordAuth from
// passwordAuthBox and loads the rootKey if present.
func CreateOffline(ctx context.Context, server ServerClient, store *Store, dataKey []byte) (*Login, error) {
	paths, err := store.paths(false)
	if err != nil {
		return nil, err
	}

	pkg, err := loadLoginPackage(paths)
	if err != nil {
		return nil, err
	}

	l := &Login{store: store, server: server, paths: paths, dataKey: append([]byte(nil), dataKey...)}

	if pkg.PasswordAuthBox != nil {
		passwordAuth, err := pkg.PasswordAuthBox.Decrypt(dataKey)
		if err != nil {
			return nil, abcerr.Wrap(abcerr.DecryptFailure, err, "recovering passwordAuth")
		}
		l.passwordAuth = passwordAuth
	}

	if rootBox, err := loadRootKeyBox(paths); err == nil {
		rootKey, err := rootBox.Decrypt(dataKey)
		if err != nil {
			return nil, abcerr.Wrap(abcerr.DecryptFailure, err, "decrypting rootKeyBox")
		}
		l.rootKey = rootKey
	} else if err := l.rootKeyUpgrade(ctx); err != nil {
		return nil, err
	}

	return l, nil
}

// CreateOnline persists reply to disk (splitting it into the care/login
// packages and the v2 stash), then proceeds exactly as CreateOffline.
func CreateOnline(ctx context.Context, server ServerClient, store *Store, dataKey []byte, reply LoginReply) (*Login, error) {
	if err := saveLoginReply(store, reply); err != nil {
		return nil, err
	}
	return CreateOffline(ctx, server, store, dataKey)
}

func saveLoginReply(store *Store, reply LoginReply) error {
	paths, err := store.paths(true)
	if err != nil {
		return err
	}
	if err := saveCarePackage(paths, reply.CarePackage); err != nil {
		return err
	}
	if err := saveLoginPackage(paths, reply.LoginPackage); err != nil {
		return err
	}
	return saveLoginStash(paths, LoginStash{KeyBoxes: reply.KeyBoxes, SyncKeyBox: reply.SyncKeyBox})
}

// rootKeyUpgrade is idempotent: if RootKey.json already exists, it is a
// no-op. Otherwise it generates a fresh BIP-39 mnemonic seed, wraps it for
// local storage under dataKey and for server-side mnemonic-only recovery
// under infoKey, and uploads the upgrade.
func (l *Login) rootKeyUpgrade(ctx context.Context) error {
	if _, err := loadRootKeyBox(l.paths); err == nil {
		rootBox, _ := loadRootKeyBox(l.paths)
		rootKey, err := rootBox.Decrypt(l.dataKey)
		if err != nil {
			return abcerr.Wrap(abcerr.DecryptFailure, err, "decrypting existing rootKeyBox")
		}
		l.rootKey = rootKey
		return nil
	}

	entropy, err := crypto.RandomBytes(rootKeySize)
	if err != nil {
		return abcerr.Wrap(abcerr.SysError, err, "generating rootKey entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return abcerr.Wrap(abcerr.Generic, err, "deriving BIP-39 mnemonic")
	}
	rootKey := bip39.NewSeed(mnemonic, "")[:rootKeySize]

	rootKeyBox, err := crypto.EncryptBox(rootKey, l.dataKey)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting rootKeyBox")
	}

	infoKey := crypto.HMACSHA256(rootKey, []byte("infoKey"))
	mnemonicBox, err := crypto.EncryptBox([]byte(mnemonic), infoKey)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting mnemonicBox")
	}
	dataKeyBox, err := crypto.EncryptBox(l.dataKey, infoKey)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting dataKeyBox")
	}

	if err := l.server.UpgradeAccount(ctx, LoginSet(l), rootKeyBox, mnemonicBox, dataKeyBox); err != nil {
		return err
	}

	if err := saveRootKeyBox(l.paths, rootKeyBox); err != nil {
		return err
	}
	l.rootKey = rootKey
	return nil
}

type keyBoxPayload struct {
	ID   string            `json:"id"`
	Type string            `json:"type"`
	Keys map[string]string `json:"keys"`
}

// RepoFind scans the on-disk keyBoxes for one whose type matches repoType,
// decrypting each under dataKey. If repoType is WalletRepoType and no
// keyBox matches, a keyBox is synthesized from the legacy syncKeyBox. If
// still unmatched and create is true, a fresh (dataKey, syncKey) pair is
// generated, wrapped into a new keyBox, pushed to the server, and appended
// to the on-disk stash.
func (l *Login) RepoFind(ctx context.Context, repoType string, create bool) (dataKey, syncKey []byte, err error) {
	stash, err := loadLoginStash(l.paths)
	if err != nil {
		return nil, nil, err
	}

	for _, box := range stash.KeyBoxes {
		plaintext, err := box.Decrypt(l.dataKey)
		if err != nil {
			continue
		}
		var payload keyBoxPayload
		if err := json.Unmarshal(plaintext, &payload); err != nil {
			continue
		}
		if payload.Type != repoType {
			continue
		}
		dataKey, err := crypto.DecodeBase64(payload.Keys["dataKey"])
		if err != nil {
			return nil, nil, abcerr.Wrap(abcerr.DecryptError, err, "decoding keyBox dataKey")
		}
		syncKey, err := crypto.DecodeBase64(payload.Keys["syncKey"])
		if err != nil {
			return nil, nil, abcerr.Wrap(abcerr.DecryptError, err, "decoding keyBox syncKey")
		}
		return dataKey, syncKey, nil
	}

	if repoType == WalletRepoType {
		syncKey, err := stash.SyncKeyBox.Decrypt(l.dataKey)
		if err == nil {
			return l.DataKey(), syncKey, nil
		}
	}

	if !create {
		return nil, nil, abcerr.New(abcerr.AccountDoesNotExist, "no repo of type %q", repoType)
	}

	newDataKey, err := crypto.RandomBytes(dataKeySize)
	if err != nil {
		return nil, nil, abcerr.Wrap(abcerr.SysError, err, "generating repo dataKey")
	}
	newSyncKey, err := crypto.RandomBytes(syncKeySize)
	if err != nil {
		return nil, nil, abcerr.Wrap(abcerr.SysError, err, "generating repo syncKey")
	}

	idBytes, err := crypto.RandomBytes(32)
	if err != nil {
		return nil, nil, abcerr.Wrap(abcerr.SysError, err, "generating keyBox id")
	}

	payload := keyBoxPayload{
		ID:   crypto.EncodeBase64(idBytes),
		Type: repoType,
		Keys: map[string]string{
			"dataKey": crypto.EncodeBase64(newDataKey),
			"syncKey": crypto.EncodeBase64(newSyncKey),
		},
	}
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, abcerr.Wrap(abcerr.JsonError, err, "encoding keyBox")
	}
	keyBox, err := crypto.EncryptBox(plaintext, l.dataKey)
	if err != nil {
		return nil, nil, abcerr.Wrap(abcerr.EncryptError, err, "encrypting keyBox")
	}

	if err := l.server.UpdateKeys(ctx, LoginSet(l), keyBox); err != nil {
		return nil, nil, err
	}

	stash.KeyBoxes = append(stash.KeyBoxes, keyBox)
	if err := saveLoginStash(l.paths, stash); err != nil {
		return nil, nil, err
	}

	return newDataKey, newSyncKey, nil
}

// Update re-fetches /v2/login and re-saves the reply, refreshing keyBoxes
// and any server-side changes. It does not re-derive dataKey.
func (l *Login) Update(ctx context.Context) error {
	reply, err := l.server.Login(ctx, LoginSet(l))
	if err != nil {
		return err
	}
	return saveLoginReply(l.store, reply)
}
