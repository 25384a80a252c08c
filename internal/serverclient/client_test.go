// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package serverclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/config"
	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/abcwallet/abc-core/internal/logger"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(config.Client{AuthServerURL: srv.URL, RequestTimeout: 5 * time.Second}, logger.NewClientLogger("test"))
	require.NoError(t, err)
	return c
}

func writeReply(t *testing.T, w http.ResponseWriter, code int, results any) {
	t.Helper()
	var raw json.RawMessage
	if results != nil {
		data, err := json.Marshal(results)
		require.NoError(t, err)
		raw = data
	}
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(reply{Code: code, Results: raw}))
}

func TestCreateAccountPostsExpectedShape(t *testing.T) {
	var gotPath string
	var gotBody createAccountRequest

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeReply(t, w, codeSuccess, nil)
	}))

	care := login.CarePackage{PasswordKeySNRP: crypto.NewServerSNRP([]byte("salt-salt-salt-salt-salt-salt32"))}
	pkg := login.LoginPackage{SyncKeyBox: crypto.Box{EncryptionType: crypto.BoxTypeChaCha20Poly1305}}

	err := c.CreateAccount(context.Background(), []byte("user-id"), []byte("pw-auth"), care, pkg, crypto.Box{})
	require.NoError(t, err)
	require.Equal(t, "/v1/account/create", gotPath)
	require.Equal(t, []byte("user-id"), gotBody.UserID)
}

func TestLoginDecodesReply(t *testing.T) {
	wantReply := login.LoginReply{
		CarePackage:  login.CarePackage{PasswordKeySNRP: crypto.NewServerSNRP([]byte("salt-salt-salt-salt-salt-salt32"))},
		LoginPackage: login.LoginPackage{SyncKeyBox: crypto.Box{EncryptionType: crypto.BoxTypeChaCha20Poly1305}},
	}

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeReply(t, w, codeSuccess, wantReply)
	}))

	got, err := c.Login(context.Background(), login.AuthJSON{UserID: []byte("user-id")})
	require.NoError(t, err)
	require.Equal(t, wantReply.LoginPackage.SyncKeyBox.EncryptionType, got.LoginPackage.SyncKeyBox.EncryptionType)
}

func TestLoginMapsServerErrorCode(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeReply(t, w, codeNoAccount, nil)
	}))

	_, err := c.Login(context.Background(), login.AuthJSON{UserID: []byte("ghost")})
	var abcErr *abcerr.Error
	require.ErrorAs(t, err, &abcErr)
	require.Equal(t, abcerr.AccountDoesNotExist, abcErr.Kind)
}

func TestNetworkFailureMapsToNetworkError(t *testing.T) {
	c, err := New(config.Client{AuthServerURL: "http://127.0.0.1:1", RequestTimeout: 200 * time.Millisecond}, logger.NewClientLogger("test"))
	require.NoError(t, err)

	_, err = c.Login(context.Background(), login.AuthJSON{})
	var abcErr *abcerr.Error
	require.ErrorAs(t, err, &abcErr)
	require.Equal(t, abcerr.NetworkError, abcErr.Kind)
}

func TestUpdatePin2RoundTrip(t *testing.T) {
	var gotBody updatePin2Request

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeReply(t, w, codeSuccess, nil)
	}))

	err := c.UpdatePin2(context.Background(), login.AuthJSON{UserID: []byte("user-id")},
		crypto.Box{EncryptionType: crypto.BoxTypeChaCha20Poly1305}, crypto.Box{EncryptionType: crypto.BoxTypeChaCha20Poly1305})
	require.NoError(t, err)
	require.Equal(t, []byte("user-id"), gotBody.UserID)
}

func TestFetchLobbyUsesPathID(t *testing.T) {
	var gotPath string
	wantLobby := login.Lobby{AccountRequest: login.AccountRequest{Type: login.WalletRepoType, DisplayName: "my phone"}}

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeReply(t, w, codeSuccess, wantLobby)
	}))

	got, err := c.FetchLobby(context.Background(), "lobby-123")
	require.NoError(t, err)
	require.Equal(t, "/v2/lobby/lobby-123", gotPath)
	require.Equal(t, "my phone", got.AccountRequest.DisplayName)
}
