// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"testing"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUsername(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alice", "alice"},
		{"  Alice   Example  ", "alice example"},
		{"ALICE", "alice"},
		{"alice", "alice"},
		{"a  b   c", "a b c"},
	}
	for _, c := range cases {
		got, err := NormalizeUsername(c.in)
		require.NoError(t, err)
		require.Equal(t, c.want, got)
	}
}

func TestNormalizeUsernameIdempotent(t *testing.T) {
	once, err := NormalizeUsername("  Alice   Example  ")
	require.NoError(t, err)
	twice, err := NormalizeUsername(once)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestNormalizeUsernameRejectsUnsupportedCharacters(t *testing.T) {
	_, err := NormalizeUsername("aliceé") // é is outside U+0020..U+007E
	require.Error(t, err)
	require.True(t, abcerr.Is(err, abcerr.NotSupported))

	_, err = NormalizeUsername("alice\tbob")
	require.Error(t, err)
}
