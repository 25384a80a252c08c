// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedKey32(b byte) []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestEncryptBox_RoundTrip(t *testing.T) {
	key := fixedKey32(0x42)
	plaintext := []byte("payload")

	box, err := EncryptBox(plaintext, key)
	require.NoError(t, err)
	assert.Equal(t, BoxTypeChaCha20Poly1305, box.EncryptionType)

	got, err := box.Decrypt(key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncryptBox_WrongKeyFails(t *testing.T) {
	box, err := EncryptBox([]byte("payload"), fixedKey32(0x01))
	require.NoError(t, err)

	_, err = box.Decrypt(fixedKey32(0x02))
	assert.Error(t, err)
}

func TestEncryptLegacyBox_RoundTrip(t *testing.T) {
	key := fixedKey32(0x99)
	plaintext := []byte("payload")

	box, err := EncryptLegacyBox(plaintext, key)
	require.NoError(t, err)
	assert.Equal(t, BoxTypeAES256CBC, box.EncryptionType)

	got, err := box.Decrypt(key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncryptLegacyBox_WrongKeyFails(t *testing.T) {
	box, err := EncryptLegacyBox([]byte("payload"), fixedKey32(0x10))
	require.NoError(t, err)

	_, err = box.Decrypt(fixedKey32(0x11))
	assert.Error(t, err)
}

func TestEncryptLegacyBox_EmptyPlaintextRoundTrips(t *testing.T) {
	key := fixedKey32(0x05)
	box, err := EncryptLegacyBox(nil, key)
	require.NoError(t, err)

	got, err := box.Decrypt(key)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBox_UnknownEncryptionTypeFails(t *testing.T) {
	box := Box{EncryptionType: 7, Nonce: "00", Ciphertext: "AA=="}
	_, err := box.Decrypt(fixedKey32(0x00))
	assert.Error(t, err)
}

func TestBuildLegacyEnvelope_ShapeInvariants(t *testing.T) {
	data := []byte("some data that will be wrapped")
	envelope, err := buildLegacyEnvelope(data)
	require.NoError(t, err)

	h := int(envelope[0])
	pos := 1 + h
	dataLen := int(envelope[pos])<<24 | int(envelope[pos+1])<<16 | int(envelope[pos+2])<<8 | int(envelope[pos+3])
	assert.Equal(t, len(data), dataLen)

	pos += 4
	assert.Equal(t, data, envelope[pos:pos+dataLen])

	// The envelope frame overhead is 1+4+1+32 = 38 bytes plus the random
	// header/footer; the final ciphertext adds PKCS#7 padding on top.
	f := int(envelope[pos+dataLen])
	assert.Equal(t, 1+h+4+len(data)+1+f+sha256Size, len(envelope))
}

func TestAES256CBC_RoundTrip(t *testing.T) {
	key := fixedKey32(0x07)
	iv := make([]byte, aes256IVSize)
	for i := range iv {
		iv[i] = byte(i)
	}

	plaintext := []byte("block-aligned test data!")
	ciphertext, err := aes256CBCEncrypt(plaintext, key, iv)
	require.NoError(t, err)
	assert.Equal(t, 0, len(ciphertext)%16)

	got, err := aes256CBCDecrypt(ciphertext, key, iv)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestPKCS7_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 17, 31, 32} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i)
		}
		padded := pkcs7Pad(data, 16)
		assert.Equal(t, 0, len(padded)%16)

		unpadded, err := pkcs7Unpad(padded)
		require.NoError(t, err)
		assert.Equal(t, data, unpadded)
	}
}

func TestPKCS7Unpad_RejectsInvalidPadding(t *testing.T) {
	_, err := pkcs7Unpad([]byte{0x01, 0x02, 0x00})
	assert.Error(t, err)
}
