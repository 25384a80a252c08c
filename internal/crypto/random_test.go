// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomBytes_Length(t *testing.T) {
	b, err := RandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, b, 32)
}

func TestRandomBytes_Zero(t *testing.T) {
	b, err := RandomBytes(0)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestRandomBytes_Unpredictable(t *testing.T) {
	a, err := RandomBytes(32)
	require.NoError(t, err)
	b, err := RandomBytes(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSeedProcessRandom_DoesNotError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SeedProcessRandom(dir, []byte("extra-entropy")))

	b, err := RandomBytes(16)
	require.NoError(t, err)
	assert.Len(t, b, 16)
}

func TestSeedProcessRandom_RepeatedCallsFoldInNewMaterial(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SeedProcessRandom(dir))
	first := processRandom.pool

	require.NoError(t, SeedProcessRandom(dir, []byte("more")))
	second := processRandom.pool

	assert.NotEqual(t, first, second)
}
