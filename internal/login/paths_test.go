// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"testing"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/stretchr/testify/require"
)

func TestPathsAllocatesAndReuses(t *testing.T) {
	pctx := newTestContext(t)
	store := newTestStore(t, pctx, "alice")

	_, err := store.paths(false)
	require.Error(t, err)
	require.True(t, abcerr.Is(err, abcerr.FileDoesNotExist))

	first, err := store.paths(true)
	require.NoError(t, err)

	second, err := store.paths(true)
	require.NoError(t, err)
	require.Equal(t, first.Dir, second.Dir, "paths must not allocate a new directory once one exists")

	third, err := store.paths(false)
	require.NoError(t, err)
	require.Equal(t, first.Dir, third.Dir)
}

func TestPathsAllocatesDistinctDirsPerUsername(t *testing.T) {
	pctx := newTestContext(t)
	alice := newTestStore(t, pctx, "alice")
	bob := newTestStore(t, pctx, "bob")

	alicePaths, err := alice.paths(true)
	require.NoError(t, err)
	bobPaths, err := bob.paths(true)
	require.NoError(t, err)

	require.NotEqual(t, alicePaths.Dir, bobPaths.Dir)
}

func TestSortedAccountDirs(t *testing.T) {
	pctx := newTestContext(t)
	for _, name := range []string{"alice", "bob", "carol"} {
		store := newTestStore(t, pctx, name)
		_, err := store.paths(true)
		require.NoError(t, err)
	}

	accountsRoot := pctx.RootDir + "/" + pctx.AccountsDirName()
	dirs, err := sortedAccountDirs(accountsRoot)
	require.NoError(t, err)
	require.Len(t, dirs, 3)
}
