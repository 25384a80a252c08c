// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodingRoundTrip(t *testing.T) {
	samples := [][]byte{
		{},
		{0x00},
		{0xff},
		[]byte("payload"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		make([]byte, 63),
		make([]byte, 64),
	}
	for i := range samples[5] {
		samples[5][i] = byte(i)
	}
	for i := range samples[6] {
		samples[6][i] = byte(255 - i)
	}

	for _, s := range samples {
		got16, err := DecodeBase16(EncodeBase16(s))
		require.NoError(t, err)
		assert.Equal(t, s, got16)

		got32, err := DecodeBase32(EncodeBase32(s))
		require.NoError(t, err)
		assert.Equal(t, s, got32)

		got58, err := DecodeBase58(EncodeBase58(s))
		require.NoError(t, err)
		assert.Equal(t, s, got58)

		got64, err := DecodeBase64(EncodeBase64(s))
		require.NoError(t, err)
		assert.Equal(t, s, got64)
	}
}

func TestDecodeBase16_Invalid(t *testing.T) {
	_, err := DecodeBase16("not-hex")
	assert.Error(t, err)
}

func TestDecodeBase32_RejectsBadLength(t *testing.T) {
	_, err := DecodeBase32("ABC")
	assert.Error(t, err)
}

func TestDecodeBase32_RejectsBadAlphabet(t *testing.T) {
	_, err := DecodeBase32("11111111")
	assert.Error(t, err)
}

func TestDecodeBase58_RejectsBadAlphabet(t *testing.T) {
	_, err := DecodeBase58("0OIl")
	assert.Error(t, err)
}

func TestDecodeBase64_Invalid(t *testing.T) {
	_, err := DecodeBase64("not base64!!")
	assert.Error(t, err)
}

func TestEncodeBase58_KnownVector(t *testing.T) {
	// "" encodes to "" and decodes back to an empty slice.
	assert.Equal(t, "", EncodeBase58(nil))
	got, err := DecodeBase58("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
