// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"encoding/json"
	"net/http"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/login"
)

type uploadDebugLogRequest struct {
	login.AuthJSON
	Log []byte `json:"log"`
}

// handleUploadDebugLog serves POST /v1/account/debug. The log itself never
// unlocks anything, so it is only password-gated: a locked-out OTP user
// must still be able to hand over diagnostics.
func (h *Handler) handleUploadDebugLog(w http.ResponseWriter, r *http.Request) {
	var req uploadDebugLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	acct, err := h.authenticatePassword(r.Context(), req.UserID, req.PasswordAuth)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.repos.Accounts.SaveDebugLog(r.Context(), acct.UserID, req.Log); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}
