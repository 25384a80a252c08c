// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
	"github.com/abcwallet/abc-core/internal/login"
)

type updatePin2Request struct {
	login.AuthJSON
	Pin2Box    crypto.Box `json:"pin2Box"`
	Pin2KeyBox crypto.Box `json:"pin2KeyBox"`
}

// handleUpdatePin2 serves PUT /v2/login/pin2. The caller authenticates
// with its existing password and supplies the new pin2Id/pin2Auth pair
// inside the same AuthJSON, so provisioning a PIN never needs a separate
// round trip.
func (h *Handler) handleUpdatePin2(w http.ResponseWriter, r *http.Request) {
	var req updatePin2Request
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

	if err := h.repos.Accounts.SetPin2(r.Context(), req.UserID, req.Pin2ID, req.Pin2Auth, req.Pin2Box, req.Pin2KeyBox); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}

// handleDeletePin2 serves DELETE /v2/login/pin2.
func (h *Handler) handleDeletePin2(w http.ResponseWriter, r *http.Request) {
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

	if err := h.repos.Accounts.DeletePin2(r.Context(), auth.UserID); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}

type pinPackageGetRequest struct {
	PinAuthID string `json:"did"`
	LPIN1     []byte `json:"lpin1"`
}

type pinPackageResult struct {
	PinPackage string `json:"pin_package"`
}

// handleFetchPinPackage serves POST /v1/account/pinpackage/get, the legacy
// v1 endpoint that resolves an account by its PIN auth-ID (derived
// client-side from lpin1, not a server-verified credential: the actual PIN
// check happens offline when the client decrypts the returned pinBox).
func (h *Handler) handleFetchPinPackage(w http.ResponseWriter, r *http.Request) {
	var req pinPackageGetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	pkg, err := h.repos.PinPackages.Fetch(r.Context(), req.PinAuthID)
	if err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	if pkg.Expires != 0 && time.Now().Unix() > pkg.Expires {
		writeError(w, h.log, abcerr.New(abcerr.PinExpired, "PIN login has expired"))
		return
	}

	encoded, err := json.Marshal(pkg)
	if err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "encoding pin package"))
		return
	}
	writeReply(w, pinPackageResult{PinPackage: string(encoded)})
}

type pinPackageUpdateRequest struct {
	PinAuthID  string `json:"did"`
	PinPackage string `json:"pin_package"`
	Expires    int64  `json:"ali"`
}

// handleUpdatePinPackage serves POST /v1/account/pinpackage/update.
func (h *Handler) handleUpdatePinPackage(w http.ResponseWriter, r *http.Request) {
	var req pinPackageUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	var pkg login.PinPackage
	if err := json.Unmarshal([]byte(req.PinPackage), &pkg); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding pin package"))
		return
	}
	pkg.PinAuthID = req.PinAuthID
	pkg.Expires = req.Expires

	if err := h.repos.PinPackages.Upsert(r.Context(), req.PinAuthID, pkg); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.ServerError, err, "storing pin package"))
		return
	}
	writeReply(w, nil)
}
