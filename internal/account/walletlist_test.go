// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package account

import (
	"testing"

	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/stretchr/testify/require"
)

func newTestWalletList(t *testing.T) *WalletList {
	t.Helper()
	require.NoError(t, crypto.SeedProcessRandom(t.TempDir()))
	dataKey, err := crypto.RandomBytes(32)
	require.NoError(t, err)
	wl, err := loadWalletList(t.TempDir(), dataKey)
	require.NoError(t, err)
	return wl
}

func TestWalletListInsertAssignsIncreasingSortIndex(t *testing.T) {
	wl := newTestWalletList(t)

	require.NoError(t, wl.Insert("w1", map[string]any{"dataKey": "a"}))
	require.NoError(t, wl.Insert("w2", map[string]any{"dataKey": "b"}))

	items := wl.List()
	require.Len(t, items, 2)
	require.Equal(t, "w1", items[0].ID)
	require.Equal(t, 0, items[0].SortIndex)
	require.Equal(t, "w2", items[1].ID)
	require.Equal(t, 1, items[1].SortIndex)
}

func TestWalletListInsertDuplicateFails(t *testing.T) {
	wl := newTestWalletList(t)
	require.NoError(t, wl.Insert("w1", nil))
	require.Error(t, wl.Insert("w1", nil))
}

func TestWalletListReorderAndArchive(t *testing.T) {
	wl := newTestWalletList(t)
	require.NoError(t, wl.Insert("w1", nil))
	require.NoError(t, wl.Insert("w2", nil))

	require.NoError(t, wl.Reorder("w1", 5))
	items := wl.List()
	require.Equal(t, "w2", items[0].ID)
	require.Equal(t, "w1", items[1].ID)

	require.NoError(t, wl.ArchiveSet("w2", true))
	archived, err := wl.Archived("w2")
	require.NoError(t, err)
	require.True(t, archived)
}

func TestWalletListJSONPreservesOpaqueKeys(t *testing.T) {
	wl := newTestWalletList(t)
	require.NoError(t, wl.Insert("w1", map[string]any{"syncKey": "topsecret"}))

	payload, err := wl.JSON("w1")
	require.NoError(t, err)
	require.Equal(t, "topsecret", payload["syncKey"])
}

func TestWalletListRemove(t *testing.T) {
	wl := newTestWalletList(t)
	require.NoError(t, wl.Insert("w1", nil))
	require.NoError(t, wl.Remove("w1"))

	_, err := wl.JSON("w1")
	require.Error(t, err)

	// Removing a second time is a no-op, not an error.
	require.NoError(t, wl.Remove("w1"))
}

func TestWalletListLoadPicksUpFilesWrittenByAnotherInstance(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, crypto.SeedProcessRandom(dir))
	dataKey, err := crypto.RandomBytes(32)
	require.NoError(t, err)

	wl1, err := loadWalletList(dir, dataKey)
	require.NoError(t, err)
	require.NoError(t, wl1.Insert("w1", nil))

	wl2, err := loadWalletList(dir, dataKey)
	require.NoError(t, err)
	items := wl2.List()
	require.Len(t, items, 1)
	require.Equal(t, "w1", items[0].ID)
}
