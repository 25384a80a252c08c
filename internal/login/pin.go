// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"context"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
)

// Fixed server-chosen salts for the legacy PIN v1 SNRP pair, analogous to
// the server SNRP's hard-coded salt. N/r/p match the server SNRP.
var (
	pinSNRP1Salt = []byte("abcwallet-pin-v1-lpin1-salt-32b.")
	pinSNRP2Salt = []byte("abcwallet-pin-v1-lpin2-salt-32b.")
)

func pinSNRP1() crypto.SNRP { return crypto.NewServerSNRP(pinSNRP1Salt) }
func pinSNRP2() crypto.SNRP { return crypto.NewServerSNRP(pinSNRP2Salt) }

// LoginPin authenticates store with pin, preferring the v2 path. If no
// pin2Key is on disk, it falls back to the legacy v1 flow and, on success,
// silently upgrades the account to v2 and removes the v1 package.
func LoginPin(ctx context.Context, server ServerClient, store *Store, pin string) (*Login, error) {
	paths, err := store.paths(false)
	if err != nil {
		return nil, err
	}

	if pin2Key, err := loadPin2Key(paths); err == nil {
		return loginPin2(ctx, server, store, pin2Key, pin)
	}

	l, err := loginPin1(ctx, server, store, pin)
	if err != nil {
		return nil, err
	}

	if err := LoginPin2Set(ctx, l, pin); err != nil {
		return nil, err
	}
	if err := removePinPackage(paths); err != nil {
		return nil, err
	}
	return l, nil
}

func loginPin1(ctx context.Context, server ServerClient, store *Store, pin string) (*Login, error) {
	paths, err := store.paths(false)
	if err != nil {
		return nil, err
	}
	pkg, err := loadPinPackage(paths)
	if err != nil {
		return nil, err
	}

	lpin1, err := pinSNRP1().Hash([]byte(store.username + pin))
	if err != nil {
		return nil, abcerr.Wrap(abcerr.ScryptError, err, "deriving LPIN1")
	}
	lpin2, err := pinSNRP2().Hash([]byte(store.username + pin))
	if err != nil {
		return nil, abcerr.Wrap(abcerr.ScryptError, err, "deriving LPIN2")
	}

	ePink, err := server.FetchPinPackage(ctx, pkg.PinAuthID, lpin1)
	if err != nil {
		return nil, err
	}

	pink, err := ePink.PinBox.Decrypt(lpin2)
	if err != nil {
		return nil, abcerr.New(abcerr.BadPassword, "incorrect PIN")
	}

	dataKey, err := pkg.PinBox.Decrypt(pink)
	if err != nil {
		return nil, abcerr.New(abcerr.BadPassword, "incorrect PIN")
	}

	return CreateOffline(ctx, server, store, dataKey)
}

// LoginPin1Set provisions (or overwrites) the legacy v1 PIN package for an
// already-authenticated login.
func LoginPin1Set(ctx context.Context, l *Login, pin string) error {
	pink, err := crypto.RandomBytes(32)
	if err != nil {
		return abcerr.Wrap(abcerr.SysError, err, "generating PINK")
	}

	lpin1, err := pinSNRP1().Hash([]byte(l.store.username + pin))
	if err != nil {
		return abcerr.Wrap(abcerr.ScryptError, err, "deriving LPIN1")
	}
	lpin2, err := pinSNRP2().Hash([]byte(l.store.username + pin))
	if err != nil {
		return abcerr.Wrap(abcerr.ScryptError, err, "deriving LPIN2")
	}

	pinBox, err := crypto.EncryptBox(l.dataKey, pink)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting pinBox")
	}
	ePinkBox, err := crypto.EncryptBox(pink, lpin2)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting EPINK")
	}

	pinAuthID := crypto.EncodeBase64(lpin1[:16])
	pkg := PinPackage{PinBox: pinBox, PinAuthID: pinAuthID}

	if err := l.server.UpdatePinPackage(ctx, PinPackage{PinBox: ePinkBox, PinAuthID: pinAuthID}); err != nil {
		return err
	}
	return savePinPackage(l.paths, pkg)
}

func loginPin2(ctx context.Context, server ServerClient, store *Store, pin2Key []byte, pin string) (*Login, error) {
	pin2ID := crypto.HMACSHA256(pin2Key, []byte(store.username))
	pin2Auth := crypto.HMACSHA256(pin2Key, []byte(pin))

	reply, err := server.Login(ctx, Pin2Set(store, pin2ID, pin2Auth))
	if err != nil {
		return nil, abcerr.New(abcerr.BadPassword, "incorrect PIN")
	}
	if reply.Pin2Box == nil {
		return nil, abcerr.New(abcerr.BadPassword, "account has no PIN login path")
	}

	dataKey, err := reply.Pin2Box.Decrypt(pin2Key)
	if err != nil {
		return nil, abcerr.New(abcerr.BadPassword, "incorrect PIN")
	}

	return CreateOnline(ctx, server, store, dataKey, reply)
}

// LoginPin2Set provisions (or rotates) the v2 PIN credential for an
// already-authenticated login: generating pin2Key on first use, deriving
// its ids, and pushing the new pin2Box/pin2KeyBox to the server.
func LoginPin2Set(ctx context.Context, l *Login, pin string) error {
	pin2Key, err := loadPin2Key(l.paths)
	if err != nil {
		pin2Key, err = crypto.RandomBytes(32)
		if err != nil {
			return abcerr.Wrap(abcerr.SysError, err, "generating pin2Key")
		}
		if err := savePin2Key(l.paths, pin2Key); err != nil {
			return err
		}
	}

	pin2ID := crypto.HMACSHA256(pin2Key, []byte(l.store.username))
	pin2Auth := crypto.HMACSHA256(pin2Key, []byte(pin))

	pin2Box, err := crypto.EncryptBox(l.dataKey, pin2Key)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting pin2Box")
	}
	pin2KeyBox, err := crypto.EncryptBox(pin2Key, l.dataKey)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting pin2KeyBox")
	}

	auth := withOTP(AuthJSON{UserID: l.store.UserID(), PasswordAuth: l.passwordAuth, Pin2ID: pin2ID, Pin2Auth: pin2Auth}, l.store.OtpKey())
	return l.server.UpdatePin2(ctx, auth, pin2Box, pin2KeyBox)
}

// LoginPin2Delete removes the v2 PIN credential from the server.
func LoginPin2Delete(ctx context.Context, l *Login) error {
	return l.server.DeletePin2(ctx, LoginSet(l))
}

// Pin2Exists reports whether l's account already has a v2 PIN credential
// provisioned, so callers (account settings sync) can decide whether a PIN
// change requires LoginPin2Set or a no-op.
func Pin2Exists(l *Login) bool {
	_, err := loadPin2Key(l.paths)
	return err == nil
}
