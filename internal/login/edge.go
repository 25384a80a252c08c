// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"context"
	"encoding/json"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// edgeReplyPayload is the plaintext carried inside a Lobby's ReplyBox: the
// requested repository's keys, the approving account's username, and
// (when the requesting device asked for PIN login) the current PIN.
type edgeReplyPayload struct {
	Info      keyBoxPayload `json:"info"`
	Username  string        `json:"username"`
	PinString string        `json:"pinString,omitempty"`
}

// RequestEdgeLogin generates an ephemeral secp256k1 keypair, posts a lobby
// requesting repoType, and returns the lobby id and the private key the
// caller must retain to poll and decrypt the eventual reply.
func RequestEdgeLogin(ctx context.Context, server ServerClient, repoType, displayName string) (lobbyID string, privateKey []byte, err error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return "", nil, abcerr.Wrap(abcerr.SysError, err, "generating edge-login keypair")
	}

	request := AccountRequest{
		Type:        repoType,
		DisplayName: displayName,
		RequestKey:  priv.PubKey().SerializeCompressed(),
	}

	lobbyID, err = server.CreateLobby(ctx, request)
	if err != nil {
		return "", nil, err
	}
	return lobbyID, priv.Serialize(), nil
}

// ApproveEdgeLogin fetches lobbyID, performs ECDH against the requesting
// device's ephemeral public key, looks up or creates the requested
// repository on l, and PUTs the encrypted reply (and, when pin != "", the
// account's current PIN) back to the lobby.
func ApproveEdgeLogin(ctx context.Context, l *Login, server ServerClient, lobbyID, pin string) error {
	lobby, err := server.FetchLobby(ctx, lobbyID)
	if err != nil {
		return err
	}

	requestPub, err := secp256k1.ParsePubKey(lobby.AccountRequest.RequestKey)
	if err != nil {
		return abcerr.Wrap(abcerr.ParseError, err, "parsing lobby request key")
	}

	replyPriv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return abcerr.Wrap(abcerr.SysError, err, "generating edge-login reply keypair")
	}

	sharedSecret := secp256k1.GenerateSharedSecret(replyPriv, requestPub)
	dataKey := crypto.HMACSHA256([]byte("dataKey"), sharedSecret)

	repoDataKey, repoSyncKey, err := l.RepoFind(ctx, lobby.AccountRequest.Type, true)
	if err != nil {
		return err
	}

	idBytes, err := crypto.RandomBytes(32)
	if err != nil {
		return abcerr.Wrap(abcerr.SysError, err, "generating repo info id")
	}

	payload := edgeReplyPayload{
		Info: keyBoxPayload{
			ID:   crypto.EncodeBase64(idBytes),
			Type: lobby.AccountRequest.Type,
			Keys: map[string]string{
				"dataKey": crypto.EncodeBase64(repoDataKey),
				"syncKey": crypto.EncodeBase64(repoSyncKey),
			},
		},
		Username:  l.store.username,
		PinString: pin,
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return abcerr.Wrap(abcerr.JsonError, err, "encoding edge-login reply")
	}
	replyBox, err := crypto.EncryptBox(plaintext, dataKey)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting replyBox")
	}

	lobby.ReplyKey = replyPriv.PubKey().SerializeCompressed()
	lobby.ReplyBox = &replyBox
	return server.UpdateLobby(ctx, lobbyID, lobby)
}

// EdgeLoginResult is what the requesting device recovers once the
// approving device has resolved the lobby.
type EdgeLoginResult struct {
	Username string
	DataKey  string
	SyncKey  string
	PIN      string
}

// PollEdgeLogin fetches lobbyID and, if the approving device has replied,
// performs ECDH with privateKey to decrypt the reply. Returns
// abcerr.FileDoesNotExist if no reply has arrived yet.
func PollEdgeLogin(ctx context.Context, server ServerClient, lobbyID string, privateKey []byte) (EdgeLoginResult, error) {
	lobby, err := server.FetchLobby(ctx, lobbyID)
	if err != nil {
		return EdgeLoginResult{}, err
	}
	if lobby.ReplyBox == nil || lobby.ReplyKey == nil {
		return EdgeLoginResult{}, abcerr.New(abcerr.FileDoesNotExist, "edge-login request has not been approved yet")
	}

	priv := secp256k1.PrivKeyFromBytes(privateKey)
	replyPub, err := secp256k1.ParsePubKey(lobby.ReplyKey)
	if err != nil {
		return EdgeLoginResult{}, abcerr.Wrap(abcerr.ParseError, err, "parsing lobby reply key")
	}

	sharedSecret := secp256k1.GenerateSharedSecret(priv, replyPub)
	dataKey := crypto.HMACSHA256([]byte("dataKey"), sharedSecret)

	plaintext, err := lobby.ReplyBox.Decrypt(dataKey)
	if err != nil {
		return EdgeLoginResult{}, abcerr.Wrap(abcerr.DecryptFailure, err, "decrypting edge-login replyBox")
	}

	var payload edgeReplyPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return EdgeLoginResult{}, abcerr.Wrap(abcerr.JsonError, err, "decoding edge-login reply")
	}

	return EdgeLoginResult{
		Username: payload.Username,
		DataKey:  payload.Info.Keys["dataKey"],
		SyncKey:  payload.Info.Keys["syncKey"],
		PIN:      payload.PinString,
	}, nil
}
