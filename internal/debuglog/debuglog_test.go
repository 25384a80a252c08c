// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package debuglog

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	log, err := Open(path, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxBytes, log.maxBytes)
}

func TestPrintf_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	log, err := Open(path, 0)
	require.NoError(t, err)

	require.NoError(t, log.Printf("login attempt for %s", "alice"))
	require.NoError(t, log.Printf("login attempt for %s", "bob"))

	contents, err := log.Read()
	require.NoError(t, err)
	assert.Contains(t, string(contents), "login attempt for alice")
	assert.Contains(t, string(contents), "login attempt for bob")
	assert.Equal(t, 2, strings.Count(string(contents), "\n"))
}

func TestPrintf_RotatesPastThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	log, err := Open(path, 100)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		require.NoError(t, log.Printf("padding line number %d to force rotation", i))
	}

	contents, err := log.Read()
	require.NoError(t, err)
	assert.LessOrEqual(t, int64(len(contents)), int64(200))
	assert.Contains(t, string(contents), "padding line number 49")
	assert.NotContains(t, string(contents), "padding line number 0 ")
}
