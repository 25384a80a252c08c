// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Box encryption types.
const (
	// BoxTypeAES256CBC is the legacy "package" format: a padded integrity
	// envelope encrypted with AES-256-CBC. Kept only so data written by
	// older clients still decrypts; new writes never produce this type.
	BoxTypeAES256CBC = 0

	// BoxTypeChaCha20Poly1305 is ChaCha20-Poly1305-IETF, a standard AEAD.
	// Every new write uses this type.
	BoxTypeChaCha20Poly1305 = 1
)

const (
	aes256KeySize = 32
	aes256IVSize  = 16
	sha256Size    = 32
)

// Box is the authenticated-encryption envelope used for every encrypted
// value on disk and on the wire.
type Box struct {
	EncryptionType int    `json:"encryptionType"`
	Nonce          string `json:"nonce"`
	Ciphertext     string `json:"ciphertext"`
}

// EncryptBox produces a type-1 (ChaCha20-Poly1305-IETF) box over plaintext
// under key. key must be 32 bytes.
func EncryptBox(plaintext, key []byte) (Box, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return Box{}, fmt.Errorf("crypto: building chacha20poly1305 aead: %w", err)
	}

	nonce, err := RandomBytes(aead.NonceSize())
	if err != nil {
		return Box{}, fmt.Errorf("crypto: generating nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)
	return Box{
		EncryptionType: BoxTypeChaCha20Poly1305,
		Nonce:          EncodeBase16(nonce),
		Ciphertext:     EncodeBase64(ciphertext),
	}, nil
}

// EncryptLegacyBox produces a type-0 (AES-256-CBC) box, reproducing the
// historical padded-integrity-envelope format bit-exact. It exists for
// regression fixtures and for re-encrypting legacy data; new writes should
// use [EncryptBox].
func EncryptLegacyBox(plaintext, key []byte) (Box, error) {
	iv, err := RandomBytes(aes256IVSize)
	if err != nil {
		return Box{}, fmt.Errorf("crypto: generating IV: %w", err)
	}

	envelope, err := buildLegacyEnvelope(plaintext)
	if err != nil {
		return Box{}, err
	}

	ciphertext, err := aes256CBCEncrypt(envelope, key, iv)
	if err != nil {
		return Box{}, err
	}

	return Box{
		EncryptionType: BoxTypeAES256CBC,
		Nonce:          EncodeBase16(iv),
		Ciphertext:     EncodeBase64(ciphertext),
	}, nil
}

// Decrypt recovers the plaintext from b using key, dispatching on
// b.EncryptionType. Type-0 decryption recomputes the legacy envelope's
// trailing SHA-256 over everything preceding it and rejects the box on
// mismatch; this check is not constant-time, matching the legacy behaviour
// it reproduces.
func (b Box) Decrypt(key []byte) ([]byte, error) {
	nonce, err := DecodeBase16(b.Nonce)
	if err != nil {
		return nil, fmt.Errorf("crypto: decoding box nonce: %w", err)
	}
	ciphertext, err := DecodeBase64(b.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("crypto: decoding box ciphertext: %w", err)
	}

	switch b.EncryptionType {
	case BoxTypeAES256CBC:
		plaintext, err := decryptLegacyEnvelope(ciphertext, key, nonce)
		if err != nil {
			return nil, fmt.Errorf("crypto: legacy box decryption failed: %w", err)
		}
		return plaintext, nil

	case BoxTypeChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("crypto: building chacha20poly1305 aead: %w", err)
		}
		if len(nonce) != aead.NonceSize() {
			return nil, fmt.Errorf("crypto: bad nonce size for chacha20poly1305 box")
		}
		plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
		if err != nil {
			return nil, fmt.Errorf("crypto: chacha20poly1305 authentication failed: %w", err)
		}
		return plaintext, nil

	default:
		return nil, fmt.Errorf("crypto: unknown box encryption type %d", b.EncryptionType)
	}
}

// buildLegacyEnvelope wraps data in the legacy padded-integrity envelope:
//
//	[rand_h:1][rand_header:h][len:4 big-endian][data:len][rand_f:1][rand_footer:f][sha256(everything above):32]
//
// h and f are independently random byte counts (0-255); they contribute
// noise to the plaintext, not block alignment, which the surrounding
// AES-256-CBC encryption handles with standard PKCS#7 padding.
func buildLegacyEnvelope(data []byte) ([]byte, error) {
	h, header, err := randomCountedBytes()
	if err != nil {
		return nil, fmt.Errorf("crypto: generating legacy envelope header: %w", err)
	}
	f, footer, err := randomCountedBytes()
	if err != nil {
		return nil, fmt.Errorf("crypto: generating legacy envelope footer: %w", err)
	}

	buf := make([]byte, 0, 1+h+4+len(data)+1+f+sha256Size)
	buf = append(buf, byte(h))
	buf = append(buf, header...)

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, data...)

	buf = append(buf, byte(f))
	buf = append(buf, footer...)

	sum := sha256.Sum256(buf)
	buf = append(buf, sum[:]...)

	return buf, nil
}

// randomCountedBytes draws a random count byte 0-255 and then that many
// random bytes.
func randomCountedBytes() (int, []byte, error) {
	countByte, err := RandomBytes(1)
	if err != nil {
		return 0, nil, err
	}
	count := int(countByte[0])
	data, err := RandomBytes(count)
	if err != nil {
		return 0, nil, err
	}
	return count, data, nil
}

// decryptLegacyEnvelope reverses buildLegacyEnvelope after undoing the
// surrounding AES-256-CBC, and rejects the result if the trailing SHA-256
// does not match the bytes preceding it.
func decryptLegacyEnvelope(ciphertext, key, iv []byte) ([]byte, error) {
	envelope, err := aes256CBCDecrypt(ciphertext, key, iv)
	if err != nil {
		return nil, err
	}

	minSize := 1 + 4 + 1 + sha256Size
	if len(envelope) < minSize {
		return nil, fmt.Errorf("crypto: legacy envelope shorter than the minimum frame")
	}

	h := int(envelope[0])
	pos := 1 + h
	if len(envelope) < pos+4 {
		return nil, fmt.Errorf("crypto: legacy envelope too short for its header")
	}

	dataLen := int(binary.BigEndian.Uint32(envelope[pos : pos+4]))
	pos += 4
	if len(envelope) < pos+dataLen+1+sha256Size {
		return nil, fmt.Errorf("crypto: legacy envelope too short for its data section")
	}

	data := envelope[pos : pos+dataLen]
	pos += dataLen

	f := int(envelope[pos])
	pos++
	if len(envelope) < pos+f+sha256Size {
		return nil, fmt.Errorf("crypto: legacy envelope too short for its footer")
	}
	pos += f

	shaCheckLen := pos
	expectedSum := envelope[pos : pos+sha256Size]
	actualSum := sha256.Sum256(envelope[:shaCheckLen])
	if !bytes.Equal(actualSum[:], expectedSum) {
		return nil, fmt.Errorf("crypto: legacy envelope failed its SHA-256 integrity check")
	}

	out := make([]byte, dataLen)
	copy(out, data)
	return out, nil
}

// aes256CBCEncrypt encrypts plaintext under key and iv using AES-256-CBC
// with PKCS#7 padding. key and iv are zero-padded or truncated to 32 and 16
// bytes respectively, matching the legacy implementation this reproduces.
func aes256CBCEncrypt(plaintext, key, iv []byte) ([]byte, error) {
	block, err := newAES256Cipher(key)
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(plaintext, block.BlockSize())
	ciphertext := make([]byte, len(padded))
	mode := cipher.NewCBCEncrypter(block, fixedSize(iv, aes256IVSize))
	mode.CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}

// aes256CBCDecrypt is the inverse of aes256CBCEncrypt.
func aes256CBCDecrypt(ciphertext, key, iv []byte) ([]byte, error) {
	block, err := newAES256Cipher(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("crypto: ciphertext is not a multiple of the AES block size")
	}
	padded := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, fixedSize(iv, aes256IVSize))
	mode.CryptBlocks(padded, ciphertext)
	return pkcs7Unpad(padded)
}

// newAES256Cipher builds an AES cipher from a key zero-padded or truncated
// to exactly 32 bytes.
func newAES256Cipher(key []byte) (cipher.Block, error) {
	block, err := aes.NewCipher(fixedSize(key, aes256KeySize))
	if err != nil {
		return nil, fmt.Errorf("crypto: building AES cipher: %w", err)
	}
	return block, nil
}

// fixedSize returns b zero-padded or truncated to exactly n bytes.
func fixedSize(b []byte, n int) []byte {
	fixed := make([]byte, n)
	copy(fixed, b)
	return fixed
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("crypto: cannot remove PKCS#7 padding from empty data")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) {
		return nil, fmt.Errorf("crypto: invalid PKCS#7 padding")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("crypto: invalid PKCS#7 padding")
		}
	}
	return data[:len(data)-padLen], nil
}
