// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"context"
	"testing"

	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/abcwallet/abc-core/internal/procctx"
	"github.com/stretchr/testify/require"
)

// fakeServer is the smallest ServerClient fake that can carry
// login.CreateNew and a subsequent login.LoginPassword through to
// completion, which is all this package's tests exercise.
type fakeServer struct {
	userID       []byte
	passwordAuth []byte
	care         login.CarePackage
	pkg          login.LoginPackage
}

func (s *fakeServer) Login(ctx context.Context, auth login.AuthJSON) (login.LoginReply, error) {
	return login.LoginReply{CarePackage: s.care, LoginPackage: s.pkg}, nil
}
func (s *fakeServer) FetchCarePackage(ctx context.Context, userID []byte) (login.CarePackage, error) {
	return s.care, nil
}
func (s *fakeServer) CreateAccount(ctx context.Context, userID, passwordAuth []byte, care login.CarePackage, pkg login.LoginPackage, syncKeyBox crypto.Box) error {
	s.userID, s.passwordAuth, s.care, s.pkg = userID, passwordAuth, care, pkg
	return nil
}
func (s *fakeServer) ActivateAccount(ctx context.Context, userID []byte) error { return nil }
func (s *fakeServer) UpgradeAccount(ctx context.Context, auth login.AuthJSON, rootKeyBox, mnemonicBox, dataKeyBox crypto.Box) error {
	return nil
}
func (s *fakeServer) UpdatePassword(ctx context.Context, auth login.AuthJSON, care login.CarePackage, pkg login.LoginPackage) error {
	s.care, s.pkg = care, pkg
	return nil
}
func (s *fakeServer) UpdateKeys(ctx context.Context, auth login.AuthJSON, keyBox crypto.Box) error {
	return nil
}
func (s *fakeServer) UpdatePin2(ctx context.Context, auth login.AuthJSON, pin2Box, pin2KeyBox crypto.Box) error {
	return nil
}
func (s *fakeServer) DeletePin2(ctx context.Context, auth login.AuthJSON) error { return nil }
func (s *fakeServer) FetchPinPackage(ctx context.Context, pinAuthID string, lpin1 []byte) (login.PinPackage, error) {
	return login.PinPackage{}, nil
}
func (s *fakeServer) UpdatePinPackage(ctx context.Context, pkg login.PinPackage) error { return nil }
func (s *fakeServer) UpdateRecovery2(ctx context.Context, auth login.AuthJSON, recovery2Box crypto.Box, questions []string, question2Box crypto.Box) error {
	return nil
}
func (s *fakeServer) DeleteRecovery2(ctx context.Context, auth login.AuthJSON) error { return nil }
func (s *fakeServer) OtpEnable(ctx context.Context, auth login.AuthJSON, keyBase32 string, timeoutSeconds int64) error {
	return nil
}
func (s *fakeServer) OtpDisable(ctx context.Context, auth login.AuthJSON) error { return nil }
func (s *fakeServer) OtpStatus(ctx context.Context, auth login.AuthJSON) (bool, int64, error) {
	return false, 0, nil
}
func (s *fakeServer) OtpReset(ctx context.Context, userID []byte, resetToken string) error {
	return nil
}
func (s *fakeServer) UploadDebugLog(ctx context.Context, auth login.AuthJSON, log []byte) error {
	return nil
}
func (s *fakeServer) CreateLobby(ctx context.Context, request login.AccountRequest) (string, error) {
	return "", nil
}
func (s *fakeServer) FetchLobby(ctx context.Context, lobbyID string) (login.Lobby, error) {
	return login.Lobby{}, nil
}
func (s *fakeServer) UpdateLobby(ctx context.Context, lobbyID string, lobby login.Lobby) error {
	return nil
}

func newTestContext(t *testing.T) *procctx.Context {
	t.Helper()
	pctx, err := procctx.New(t.TempDir(), procctx.Testnet, 0, nil)
	require.NoError(t, err)
	return pctx
}

func TestLoginPasswordCachesSession(t *testing.T) {
	pctx := newTestContext(t)
	server := &fakeServer{}
	c := New()

	store, err := login.New(pctx, "alice")
	require.NoError(t, err)
	_, err = login.CreateNew(context.Background(), server, store, "hunter2")
	require.NoError(t, err)

	l1, a1, err := c.LoginPassword(context.Background(), pctx, server, "alice", "hunter2")
	require.NoError(t, err)
	require.NotNil(t, l1)
	require.NotNil(t, a1)

	// A second call for the same username must return the cached session
	// without re-deriving anything: passing a wrong password proves no
	// credential check ran the second time.
	l2, a2, err := c.LoginPassword(context.Background(), pctx, server, "alice", "wrong-password")
	require.NoError(t, err)
	require.Same(t, l1, l2)
	require.Same(t, a1, a2)
}

func TestLoginDifferentUsernameClearsCache(t *testing.T) {
	pctx := newTestContext(t)
	server := &fakeServer{}
	c := New()

	_, _, err := c.LoginNew(context.Background(), pctx, server, "alice", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "alice", c.Username())

	otherServer := &fakeServer{}
	_, _, err = c.LoginNew(context.Background(), pctx, otherServer, "bob", "swordfish")
	require.NoError(t, err)
	require.Equal(t, "bob", c.Username())
}

func TestLogoutClearsCache(t *testing.T) {
	pctx := newTestContext(t)
	server := &fakeServer{}
	c := New()

	_, _, err := c.LoginNew(context.Background(), pctx, server, "alice", "hunter2")
	require.NoError(t, err)

	c.Logout()
	require.Equal(t, "", c.Username())
}

func TestWalletsReflectsCachedAccount(t *testing.T) {
	pctx := newTestContext(t)
	server := &fakeServer{}
	c := New()

	_, a, err := c.LoginNew(context.Background(), pctx, server, "alice", "hunter2")
	require.NoError(t, err)
	require.Empty(t, c.Wallets())

	require.NoError(t, a.Wallets.Insert("w1", nil))
	items := c.Wallets()
	require.Len(t, items, 1)
	require.Equal(t, "w1", items[0].ID)
}

func TestLobbyCachePutGetForget(t *testing.T) {
	lc := NewLobbyCache()

	_, ok := lc.Get("missing")
	require.False(t, ok)

	lc.Put("lobby1", []byte("secret-key"))
	key, ok := lc.Get("lobby1")
	require.True(t, ok)
	require.Equal(t, []byte("secret-key"), key)

	lc.Forget("lobby1")
	_, ok = lc.Get("lobby1")
	require.False(t, ok)
}
