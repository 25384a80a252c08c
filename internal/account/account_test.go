// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package account

import (
	"context"
	"testing"

	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/abcwallet/abc-core/internal/procctx"
	"github.com/stretchr/testify/require"
)

// stubServer is the smallest ServerClient fake that can carry a fresh
// account through login.CreateNew and through a PIN v2 round trip, which is
// all Account.SaveSettings needs to exercise.
type stubServer struct {
	pin2Box, pin2KeyBox *crypto.Box
}

func (s *stubServer) Login(ctx context.Context, auth login.AuthJSON) (login.LoginReply, error) {
	return login.LoginReply{}, nil
}
func (s *stubServer) FetchCarePackage(ctx context.Context, userID []byte) (login.CarePackage, error) {
	return login.CarePackage{}, nil
}
func (s *stubServer) CreateAccount(ctx context.Context, userID, passwordAuth []byte, care login.CarePackage, pkg login.LoginPackage, syncKeyBox crypto.Box) error {
	return nil
}
func (s *stubServer) ActivateAccount(ctx context.Context, userID []byte) error { return nil }
func (s *stubServer) UpgradeAccount(ctx context.Context, auth login.AuthJSON, rootKeyBox, mnemonicBox, dataKeyBox crypto.Box) error {
	return nil
}
func (s *stubServer) UpdatePassword(ctx context.Context, auth login.AuthJSON, care login.CarePackage, pkg login.LoginPackage) error {
	return nil
}
func (s *stubServer) UpdateKeys(ctx context.Context, auth login.AuthJSON, keyBox crypto.Box) error {
	return nil
}
func (s *stubServer) UpdatePin2(ctx context.Context, auth login.AuthJSON, pin2Box, pin2KeyBox crypto.Box) error {
	s.pin2Box, s.pin2KeyBox = &pin2Box, &pin2KeyBox
	return nil
}
func (s *stubServer) DeletePin2(ctx context.Context, auth login.AuthJSON) error {
	s.pin2Box, s.pin2KeyBox = nil, nil
	return nil
}
func (s *stubServer) FetchPinPackage(ctx context.Context, pinAuthID string, lpin1 []byte) (login.PinPackage, error) {
	return login.PinPackage{}, nil
}
func (s *stubServer) UpdatePinPackage(ctx context.Context, pkg login.PinPackage) error { return nil }
func (s *stubServer) UpdateRecovery2(ctx context.Context, auth login.AuthJSON, recovery2Box crypto.Box, questions []string, question2Box crypto.Box) error {
	return nil
}
func (s *stubServer) DeleteRecovery2(ctx context.Context, auth login.AuthJSON) error { return nil }
func (s *stubServer) OtpEnable(ctx context.Context, auth login.AuthJSON, keyBase32 string, timeoutSeconds int64) error {
	return nil
}
func (s *stubServer) OtpDisable(ctx context.Context, auth login.AuthJSON) error { return nil }
func (s *stubServer) OtpStatus(ctx context.Context, auth login.AuthJSON) (bool, int64, error) {
	return false, 0, nil
}
func (s *stubServer) OtpReset(ctx context.Context, userID []byte, resetToken string) error {
	return nil
}
func (s *stubServer) UploadDebugLog(ctx context.Context, auth login.AuthJSON, log []byte) error {
	return nil
}
func (s *stubServer) CreateLobby(ctx context.Context, request login.AccountRequest) (string, error) {
	return "", nil
}
func (s *stubServer) FetchLobby(ctx context.Context, lobbyID string) (login.Lobby, error) {
	return login.Lobby{}, nil
}
func (s *stubServer) UpdateLobby(ctx context.Context, lobbyID string, lobby login.Lobby) error {
	return nil
}

func newTestLogin(t *testing.T, username string) (*login.Login, *stubServer) {
	t.Helper()
	pctx, err := procctx.New(t.TempDir(), procctx.Testnet, 0, nil)
	require.NoError(t, err)

	store, err := login.New(pctx, username)
	require.NoError(t, err)

	server := &stubServer{}
	l, err := login.CreateNew(context.Background(), server, store, "correcthorsebatterystaple")
	require.NoError(t, err)
	return l, server
}

func TestOpenCreatesWalletsDirAndDefaultSettings(t *testing.T) {
	l, _ := newTestLogin(t, "alice")

	a, err := Open(l)
	require.NoError(t, err)
	require.Empty(t, a.Wallets.List())
	require.Equal(t, 3600, a.Settings.SecondsAutoLogout)
	require.False(t, a.Settings.DisablePINLogin)
}

func TestSaveSettingsPersistsAndReloads(t *testing.T) {
	l, _ := newTestLogin(t, "bob")

	a, err := Open(l)
	require.NoError(t, err)

	next := *a.Settings
	next.Language = "en"
	next.SecondsAutoLogout = 120
	require.NoError(t, a.SaveSettings(context.Background(), next))

	reloaded, err := Open(l)
	require.NoError(t, err)
	require.Equal(t, "en", reloaded.Settings.Language)
	require.Equal(t, 120, reloaded.Settings.SecondsAutoLogout)
}

func TestSaveSettingsSyncsPinV2Credential(t *testing.T) {
	l, server := newTestLogin(t, "carol")

	a, err := Open(l)
	require.NoError(t, err)
	require.False(t, login.Pin2Exists(l))

	next := *a.Settings
	next.PIN = "1234"
	require.NoError(t, a.SaveSettings(context.Background(), next))

	require.True(t, login.Pin2Exists(l))
	require.NotNil(t, server.pin2Box)

	// Disabling PIN login removes the v2 credential entirely.
	next.DisablePINLogin = true
	require.NoError(t, a.SaveSettings(context.Background(), next))
	require.Nil(t, server.pin2Box)
}
