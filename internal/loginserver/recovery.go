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

type updateRecovery2Request struct {
	login.AuthJSON
	Questions    []string   `json:"questions"`
	Recovery2Box crypto.Box `json:"recovery2Box"`
	Question2Box crypto.Box `json:"question2Box"`
}

// handleUpdateRecovery2 serves PUT /v2/login/recovery2. Questions is
// carried for completeness with the wire contract but not persisted
// separately: it is already encrypted into question2Box, which is what
// Recovery2Questions decrypts client-side.
func (h *Handler) handleUpdateRecovery2(w http.ResponseWriter, r *http.Request) {
	var req updateRecovery2Request
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

	if err := h.repos.Accounts.SetRecovery2(r.Context(), req.UserID, req.Recovery2ID, req.Recovery2Auth, req.Recovery2Box, req.Question2Box); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}

// handleDeleteRecovery2 serves DELETE /v2/login/recovery2.
func (h *Handler) handleDeleteRecovery2(w http.ResponseWriter, r *http.Request) {
	var auth login.AuthJSON
	if err := json.NewDecoder(r.Body).Decode(&auth); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	acct, err := h.authenticatePassword(r.Context(), auth.UserID, auth.PasswordAuth)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.requireOTP(acct, auth.OTP); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.repos.Accounts.DeleteRecovery2(r.Context(), auth.UserID); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}
