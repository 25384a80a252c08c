// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256_Deterministic(t *testing.T) {
	a := SHA256([]byte("hello"))
	b := SHA256([]byte("hello"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, SHA256([]byte("world")))
}

func TestHMACSHA256_Deterministic(t *testing.T) {
	a := HMACSHA256([]byte("key"), []byte("data"))
	b := HMACSHA256([]byte("key"), []byte("data"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	assert.NotEqual(t, a, HMACSHA256([]byte("other-key"), []byte("data")))
	assert.NotEqual(t, a, HMACSHA256([]byte("key"), []byte("other-data")))
}

func TestHMACSHA512_Deterministic(t *testing.T) {
	a := HMACSHA512([]byte("key"), []byte("data"))
	b := HMACSHA512([]byte("key"), []byte("data"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}
