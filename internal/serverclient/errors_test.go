// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package serverclient

import (
	"testing"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/stretchr/testify/require"
)

func TestMapStatusSuccess(t *testing.T) {
	require.NoError(t, mapStatus(reply{Code: codeSuccess}))
}

func TestMapStatusAccountExists(t *testing.T) {
	err := mapStatus(reply{Code: codeAccountExists})
	var abcErr *abcerr.Error
	require.ErrorAs(t, err, &abcErr)
	require.Equal(t, abcerr.AccountAlreadyExists, abcErr.Kind)
}

func TestMapStatusInvalidPasswordWithWait(t *testing.T) {
	err := mapStatus(reply{Code: codeInvalidPassword, Results: []byte(`{"wait_seconds":42}`)})
	var abcErr *abcerr.Error
	require.ErrorAs(t, err, &abcErr)
	require.Equal(t, abcerr.InvalidPinWait, abcErr.Kind)
	require.Equal(t, 42, abcErr.WaitSeconds)
}

func TestMapStatusInvalidPasswordNoWait(t *testing.T) {
	err := mapStatus(reply{Code: codeInvalidPassword, Results: []byte(`{}`)})
	var abcErr *abcerr.Error
	require.ErrorAs(t, err, &abcErr)
	require.Equal(t, abcerr.BadPassword, abcErr.Kind)
}

func TestMapStatusInvalidOTPCarriesResetFields(t *testing.T) {
	err := mapStatus(reply{Code: codeInvalidOTP, Results: []byte(`{"otp_reset_auth":"tok","otp_timeout_date":"2026-08-01T00:00:00Z"}`)})
	var abcErr *abcerr.Error
	require.ErrorAs(t, err, &abcErr)
	require.Equal(t, abcerr.InvalidOTP, abcErr.Kind)
	require.Equal(t, "tok", abcErr.OTPResetToken)
	require.Equal(t, "2026-08-01T00:00:00Z", abcErr.OTPResetDate)
}

func TestMapStatusObsoleteIsHardStop(t *testing.T) {
	err := mapStatus(reply{Code: codeObsolete})
	var abcErr *abcerr.Error
	require.ErrorAs(t, err, &abcErr)
	require.Equal(t, abcerr.Obsolete, abcErr.Kind)
}

func TestMapStatusPinExpiredStillMapped(t *testing.T) {
	err := mapStatus(reply{Code: codePinExpired})
	var abcErr *abcerr.Error
	require.ErrorAs(t, err, &abcErr)
	require.Equal(t, abcerr.PinExpired, abcErr.Kind)
}

func TestMapStatusUnknownFallsBackToServerError(t *testing.T) {
	err := mapStatus(reply{Code: 999, Message: "weird"})
	var abcErr *abcerr.Error
	require.ErrorAs(t, err, &abcErr)
	require.Equal(t, abcerr.ServerError, abcErr.Kind)
}
