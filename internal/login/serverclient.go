// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"context"

	"github.com/abcwallet/abc-core/internal/crypto"
)

// LoginReply is the server's response to GET /v2/login, split on receipt
// into a CarePackage, a LoginPackage, and the v2 key catalog.
type LoginReply struct {
	CarePackage   CarePackage
	LoginPackage  LoginPackage
	KeyBoxes      []crypto.Box
	SyncKeyBox    crypto.Box
	Pin2Box       *crypto.Box
	Recovery2Box  *crypto.Box
	Question2Box  *crypto.Box
	RootKeyBox    *crypto.Box
	MnemonicBox   *crypto.Box
	DataKeyBox    *crypto.Box
}

// ServerClient is every outgoing call a credential flow needs to make.
// internal/serverclient provides the production implementation; tests use
// a hand-written fake.
type ServerClient interface {
	Login(ctx context.Context, auth AuthJSON) (LoginReply, error)
	FetchCarePackage(ctx context.Context, userID []byte) (CarePackage, error)

	CreateAccount(ctx context.Context, userID, passwordAuth []byte, care CarePackage, pkg LoginPackage, syncKeyBox crypto.Box) error
	ActivateAccount(ctx context.Context, userID []byte) error
	UpgradeAccount(ctx context.Context, auth AuthJSON, rootKeyBox, mnemonicBox, dataKeyBox crypto.Box) error

	UpdatePassword(ctx context.Context, auth AuthJSON, care CarePackage, pkg LoginPackage) error
	UpdateKeys(ctx context.Context, auth AuthJSON, keyBox crypto.Box) error

	UpdatePin2(ctx context.Context, auth AuthJSON, pin2Box, pin2KeyBox crypto.Box) error
	DeletePin2(ctx context.Context, auth AuthJSON) error
	FetchPinPackage(ctx context.Context, pinAuthID string, lpin1 []byte) (PinPackage, error)
	UpdatePinPackage(ctx context.Context, pkg PinPackage) error

	UpdateRecovery2(ctx context.Context, auth AuthJSON, recovery2Box crypto.Box, questions []string, question2Box crypto.Box) error
	DeleteRecovery2(ctx context.Context, auth AuthJSON) error

	OtpEnable(ctx context.Context, auth AuthJSON, keyBase32 string, timeoutSeconds int64) error
	OtpDisable(ctx context.Context, auth AuthJSON) error
	OtpStatus(ctx context.Context, auth AuthJSON) (enabled bool, timeoutSeconds int64, err error)
	OtpReset(ctx context.Context, userID []byte, resetToken string) error

	UploadDebugLog(ctx context.Context, auth AuthJSON, log []byte) error

	CreateLobby(ctx context.Context, request AccountRequest) (lobbyID string, err error)
	FetchLobby(ctx context.Context, lobbyID string) (Lobby, error)
	UpdateLobby(ctx context.Context, lobbyID string, lobby Lobby) error
}

// AccountRequest is the requesting device's half of an edge-login lobby: a
// description of the repository it wants and an ephemeral public key it
// will use to decrypt the approving device's reply.
type AccountRequest struct {
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
	RequestKey  []byte `json:"requestKey"`
}

// Lobby is the short-lived server object edge-login uses to hand an
// account's keys to another device via ECDH. Per the ReplyBox design
// decision, the approving device's response is always a JsonBox, not a
// bare info field.
type Lobby struct {
	AccountRequest AccountRequest `json:"accountRequest"`
	ReplyKey       []byte         `json:"replyKey,omitempty"`
	ReplyBox       *crypto.Box    `json:"replyBox,omitempty"`
}
