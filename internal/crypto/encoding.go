// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
)

// base58Alphabet is the Bitcoin base58 alphabet: digits and letters with the
// visually ambiguous characters (0, O, I, l) removed.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// EncodeBase16 returns the canonical lower-case hex encoding of data.
func EncodeBase16(data []byte) string {
	return hex.EncodeToString(data)
}

// DecodeBase16 decodes a hex string, rejecting odd-length or non-hex input.
func DecodeBase16(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("crypto: invalid base16 input: %w", err)
	}
	return b, nil
}

// EncodeBase32 returns the canonical rfc4648 base32 encoding of data,
// including '=' padding.
func EncodeBase32(data []byte) string {
	return base32.StdEncoding.EncodeToString(data)
}

// DecodeBase32 decodes an rfc4648 base32 string. The input length must be a
// multiple of 8 and every character must belong to the base32 alphabet or
// the padding character; non-canonical input is rejected.
func DecodeBase32(s string) ([]byte, error) {
	if len(s)%8 != 0 {
		return nil, fmt.Errorf("crypto: base32 input length must be a multiple of 8 characters")
	}
	b, err := base32.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("crypto: invalid base32 input: %w", err)
	}
	return b, nil
}

// EncodeBase64 returns the canonical standard base64 encoding of data.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes a standard base64 string.
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("crypto: invalid base64 input: %w", err)
	}
	return b, nil
}

// EncodeBase58 returns the base58 encoding of data, used for wallet and
// key-box filenames and for pin2Key/recovery2Key on-disk storage.
func EncodeBase58(data []byte) string {
	return base58.Encode(data)
}

// DecodeBase58 decodes a base58 string, rejecting any character outside the
// base58 alphabet.
func DecodeBase58(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	if i := strings.IndexFunc(s, func(r rune) bool {
		return !strings.ContainsRune(base58Alphabet, r)
	}); i != -1 {
		return nil, fmt.Errorf("crypto: invalid base58 input: character %q is not in the base58 alphabet", s[i])
	}
	return base58.Decode(s), nil
}
