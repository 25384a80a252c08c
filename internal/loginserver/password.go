// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"encoding/json"
	"net/http"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
)

type updatePasswordRequest struct {
	login.AuthJSON
	CarePackage  login.CarePackage  `json:"carePackage"`
	LoginPackage login.LoginPackage `json:"loginPackage"`
}

// handleUpdatePassword serves PUT /v2/login/password. The authenticator
// carried in AuthJSON.PasswordAuth is persisted as the account's new
// passwordAuth, matching ChangePassword's wire contract exactly.
func (h *Handler) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
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

	if err := h.repos.Accounts.UpdatePassword(r.Context(), req.UserID, req.PasswordAuth, req.CarePackage, req.LoginPackage); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}

type updateKeysRequest struct {
	login.AuthJSON
	KeyBox crypto.Box `json:"keyBox"`
}

// handleUpdateKeys serves POST /v2/login/keys.
func (h *Handler) handleUpdateKeys(w http.ResponseWriter, r *http.Request) {
	var req updateKeysRequest
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

	if err := h.repos.Accounts.AppendKeyBox(r.Context(), req.UserID, req.KeyBox); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}
