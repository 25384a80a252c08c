// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"testing"

	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/stretchr/testify/require"
)

func TestCarePackageRoundTrip(t *testing.T) {
	pctx := newTestContext(t)
	store := newTestStore(t, pctx, "alice")
	paths, err := store.paths(true)
	require.NoError(t, err)

	snrp, err := crypto.NewClientSNRP(pctx.Calibration)
	require.NoError(t, err)
	want := CarePackage{PasswordKeySNRP: snrp}

	require.NoError(t, saveCarePackage(paths, want))
	got, err := loadCarePackage(paths)
	require.NoError(t, err)
	require.Equal(t, want.PasswordKeySNRP.Salt, got.PasswordKeySNRP.Salt)
	require.Nil(t, got.ERQ)
}

func TestLoginPackageRoundTrip(t *testing.T) {
	pctx := newTestContext(t)
	store := newTestStore(t, pctx, "bob")
	paths, err := store.paths(true)
	require.NoError(t, err)

	box, err := crypto.EncryptBox([]byte("dataKey-material"), make([]byte, 32))
	require.NoError(t, err)
	want := LoginPackage{SyncKeyBox: box}

	require.NoError(t, saveLoginPackage(paths, want))
	got, err := loadLoginPackage(paths)
	require.NoError(t, err)
	require.Equal(t, want.SyncKeyBox, got.SyncKeyBox)
	require.Nil(t, got.PasswordBox)
}

func TestPin2KeyRoundTrip(t *testing.T) {
	pctx := newTestContext(t)
	store := newTestStore(t, pctx, "carol")
	paths, err := store.paths(true)
	require.NoError(t, err)

	key, err := crypto.RandomBytes(32)
	require.NoError(t, err)

	require.NoError(t, savePin2Key(paths, key))
	got, err := loadPin2Key(paths)
	require.NoError(t, err)
	require.Equal(t, key, got)
}

func TestRecovery2KeyRoundTrip(t *testing.T) {
	pctx := newTestContext(t)
	store := newTestStore(t, pctx, "dave")
	paths, err := store.paths(true)
	require.NoError(t, err)

	key, err := crypto.RandomBytes(32)
	require.NoError(t, err)

	require.NoError(t, saveRecovery2Key(paths, key))
	got, err := loadRecovery2Key(paths)
	require.NoError(t, err)
	require.Equal(t, key, got)
}

func TestPinPackageRemove(t *testing.T) {
	pctx := newTestContext(t)
	store := newTestStore(t, pctx, "erin")
	paths, err := store.paths(true)
	require.NoError(t, err)

	box, err := crypto.EncryptBox([]byte("pink"), make([]byte, 32))
	require.NoError(t, err)
	require.NoError(t, savePinPackage(paths, PinPackage{PinBox: box, PinAuthID: "abc"}))

	_, err = loadPinPackage(paths)
	require.NoError(t, err)

	require.NoError(t, removePinPackage(paths))
	_, err = loadPinPackage(paths)
	require.Error(t, err)

	// Removing a second time must be a no-op, not an error.
	require.NoError(t, removePinPackage(paths))
}
