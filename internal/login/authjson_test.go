// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"testing"

	"github.com/abcwallet/abc-core/internal/otp"
	"github.com/stretchr/testify/require"
)

func TestAuthJSONBuildersOmitOTPWhenNoneInstalled(t *testing.T) {
	pctx := newTestContext(t)
	store := newTestStore(t, pctx, "alice")

	auth := UserIDSet(store)
	require.Empty(t, auth.OTP)
	require.Equal(t, store.UserID(), auth.UserID)

	auth = PasswordSet(store, []byte("passwordAuth"))
	require.Empty(t, auth.OTP)
	require.Equal(t, []byte("passwordAuth"), auth.PasswordAuth)
}

func TestAuthJSONBuildersIncludeOTPWhenInstalled(t *testing.T) {
	pctx := newTestContext(t)
	store := newTestStore(t, pctx, "alice")

	key, err := otp.New(otp.DefaultKeySize)
	require.NoError(t, err)
	require.NoError(t, store.OtpKeySet(key))

	auth := UserIDSet(store)
	require.Len(t, auth.OTP, otp.DefaultDigits)

	auth = Pin2Set(store, []byte("pin2Id"), []byte("pin2Auth"))
	require.Len(t, auth.OTP, otp.DefaultDigits)
	require.Nil(t, auth.UserID, "pin2 authentication must not also send userId")
}

func TestAuthJSONPin2SetOmitsUserID(t *testing.T) {
	pctx := newTestContext(t)
	store := newTestStore(t, pctx, "bob")

	auth := Pin2Set(store, []byte("id"), []byte("auth"))
	require.Nil(t, auth.UserID)
	require.Equal(t, []byte("id"), auth.Pin2ID)
	require.Equal(t, []byte("auth"), auth.Pin2Auth)
}
