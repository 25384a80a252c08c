// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package otp implements the HOTP/TOTP algorithms of rfc4226 and rfc6238
// used for account two-factor authentication. A [Key] wraps the raw shared
// secret; callers derive one-time codes from it and exchange it with users
// as a base32 string for manual entry or QR provisioning.
package otp

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // rfc4226/rfc6238 mandate HMAC-SHA1.
	"fmt"
	"time"

	"github.com/abcwallet/abc-core/internal/crypto"
)

// DefaultKeySize is the number of random bytes generated for a new key.
const DefaultKeySize = 10

// DefaultDigits is the number of decimal digits in a generated code.
const DefaultDigits = 6

// DefaultTimeStep is the rfc6238 time-step window.
const DefaultTimeStep = 30 * time.Second

// Key is a shared HOTP/TOTP secret.
type Key []byte

// New generates a fresh random key of keySize bytes.
func New(keySize int) (Key, error) {
	if keySize <= 0 {
		keySize = DefaultKeySize
	}
	raw, err := crypto.RandomBytes(keySize)
	if err != nil {
		return nil, fmt.Errorf("otp: generating key: %w", err)
	}
	return Key(raw), nil
}

// DecodeBase32 parses a base32-encoded key, the form used in care packages
// and QR provisioning URIs.
func DecodeBase32(s string) (Key, error) {
	raw, err := crypto.DecodeBase32(s)
	if err != nil {
		return nil, fmt.Errorf("otp: decoding base32 key: %w", err)
	}
	return Key(raw), nil
}

// EncodeBase32 renders the key as a base32 string.
func (k Key) EncodeBase32() string {
	return crypto.EncodeBase32(k)
}

// HOTP produces the rfc4226 counter-based one-time password for counter,
// formatted as a fixed-width, zero-padded decimal string.
func (k Key) HOTP(counter uint64, digits int) string {
	if digits <= 0 {
		digits = DefaultDigits
	}

	var counterBytes [8]byte
	for i := 7; i >= 0; i-- {
		counterBytes[i] = byte(counter)
		counter >>= 8
	}

	mac := hmac.New(sha1.New, k)
	mac.Write(counterBytes[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	code := (uint32(sum[offset])&0x7f)<<24 |
		uint32(sum[offset+1])<<16 |
		uint32(sum[offset+2])<<8 |
		uint32(sum[offset+3])

	mod := uint32(1)
	for i := 0; i < digits; i++ {
		mod *= 10
	}
	return fmt.Sprintf("%0*d", digits, code%mod)
}

// TOTP produces the rfc6238 time-based one-time password for the current
// wall-clock time, using step as the time-step window.
func (k Key) TOTP(step time.Duration, digits int) string {
	if step <= 0 {
		step = DefaultTimeStep
	}
	counter := uint64(time.Now().Unix() / int64(step.Seconds()))
	return k.HOTP(counter, digits)
}

// TOTPAt produces the rfc6238 code for an arbitrary instant, for testing and
// for validating a code a user submitted against a small window of nearby
// steps to tolerate clock skew.
func (k Key) TOTPAt(at time.Time, step time.Duration, digits int) string {
	if step <= 0 {
		step = DefaultTimeStep
	}
	counter := uint64(at.Unix() / int64(step.Seconds()))
	return k.HOTP(counter, digits)
}
