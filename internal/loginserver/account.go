// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/abcwallet/abc-core/internal/store"
)

type createAccountRequest struct {
	login.AuthJSON
	CarePackage  login.CarePackage  `json:"carePackage"`
	LoginPackage login.LoginPackage `json:"loginPackage"`
	SyncKeyBox   crypto.Box         `json:"syncKeyBox"`
}

// handleCreateAccount serves POST /v1/account/create: writes the new
// account row with Activated false; /v1/account/activate sets the flag.
// No handler checks the flag, so every endpoint can reach the account as
// soon as it is created.
func (h *Handler) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	err := h.repos.Accounts.Create(r.Context(), req.UserID, req.PasswordAuth, req.CarePackage, req.LoginPackage, req.SyncKeyBox)
	if errors.Is(err, store.ErrAccountAlreadyExists) {
		writeError(w, h.log, abcerr.New(abcerr.AccountAlreadyExists, "account already exists"))
		return
	}
	if err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.ServerError, err, "creating account"))
		return
	}
	writeReply(w, nil)
}

// handleActivateAccount serves POST /v1/account/activate.
func (h *Handler) handleActivateAccount(w http.ResponseWriter, r *http.Request) {
	var auth login.AuthJSON
	if err := json.NewDecoder(r.Body).Decode(&auth); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	if err := h.repos.Accounts.Activate(r.Context(), auth.UserID); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}

type upgradeAccountRequest struct {
	login.AuthJSON
	RootKeyBox  crypto.Box `json:"rootKeyBox"`
	MnemonicBox crypto.Box `json:"mnemonicBox"`
	DataKeyBox  crypto.Box `json:"syncDataKeyBox"`
}

// handleUpgradeAccount serves POST /v1/account/upgrade.
func (h *Handler) handleUpgradeAccount(w http.ResponseWriter, r *http.Request) {
	var req upgradeAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	acct, err := h.authenticatePassword(r.Context(), req.UserID, req.PasswordAuth)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.requireOTP(acct, req.OTP); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.repos.Accounts.Upgrade(r.Context(), req.UserID, req.RootKeyBox, req.MnemonicBox, req.DataKeyBox); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}

// handleFetchCarePackage serves POST /v1/account/carepackage/get. It
// resolves the account by userID alone: the carePackage's SNRPs are
// needed before the client can derive passwordAuth in the first place, so
// this call necessarily precedes any credential check.
func (h *Handler) handleFetchCarePackage(w http.ResponseWriter, r *http.Request) {
	var auth login.AuthJSON
	if err := json.NewDecoder(r.Body).Decode(&auth); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	acct, err := h.repos.Accounts.FetchByUserID(r.Context(), auth.UserID)
	if err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, acct.CarePackage)
}

// handleLogin serves POST /v2/login: the v2 account-resolution endpoint
// shared by the password, PIN v2, and recovery v2 flows, returning the
// full care/login package bundle plus the v2 key catalog in one round trip.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var auth login.AuthJSON
	if err := json.NewDecoder(r.Body).Decode(&auth); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	acct, err := h.resolveLogin(r.Context(), auth)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	// Recovery2Questions deliberately omits answers to fetch only the
	// question box; it carries no proof of identity beyond recovery2Id, so
	// it must never be allowed to leak the OTP-gated key catalog.
	if auth.Recovery2ID != nil && auth.Recovery2Auth == nil {
		writeReply(w, login.LoginReply{CarePackage: acct.CarePackage, Question2Box: acct.Question2Box})
		return
	}
	if err := h.requireOTP(acct, auth.OTP); err != nil {
		writeError(w, h.log, err)
		return
	}

	writeReply(w, login.LoginReply{
		CarePackage:  acct.CarePackage,
		LoginPackage: acct.LoginPackage,
		KeyBoxes:     acct.KeyBoxes,
		SyncKeyBox:   acct.SyncKeyBox,
		Pin2Box:      acct.Pin2Box,
		Recovery2Box: acct.Recovery2Box,
		Question2Box: acct.Question2Box,
		RootKeyBox:   acct.RootKeyBox,
		MnemonicBox:  acct.MnemonicBox,
		DataKeyBox:   acct.DataKeyBox,
	})
}
