// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package abcerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "BadPassword", BadPassword.String())
	assert.Equal(t, "Kind(999)", Kind(999).String())
}

func TestNew_FormatsMessage(t *testing.T) {
	err := New(AccountDoesNotExist, "account %q not found", "alice")
	assert.Equal(t, "AccountDoesNotExist: account \"alice\" not found", err.Error())
}

func TestWrap_PreservesUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(FileReadError, cause, "reading login package")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestWithWait_AttachesCountdown(t *testing.T) {
	err := New(BadPassword, "incorrect password").WithWait(30)
	assert.Equal(t, 30, err.WaitSeconds)
}

func TestWithOTPReset_AttachesPayload(t *testing.T) {
	err := New(InvalidOTP, "otp required").WithOTPReset("reset-token", "2026-08-01")
	assert.Equal(t, "reset-token", err.OTPResetToken)
	assert.Equal(t, "2026-08-01", err.OTPResetDate)
}

func TestIs_MatchesAcrossWraps(t *testing.T) {
	inner := New(DecryptFailure, "hmac mismatch")
	outer := Wrap(DecryptError, inner, "decrypting care package")

	assert.True(t, Is(outer, DecryptError))
	assert.True(t, Is(outer, DecryptFailure))
	assert.False(t, Is(outer, BadPassword))
}

func TestIs_FalseOnPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), Generic))
}

func TestIs_FalseOnNil(t *testing.T) {
	assert.False(t, Is(nil, Generic))
}
