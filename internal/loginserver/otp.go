// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/login"
)

type pendingReset struct {
	Token   string
	ReadyAt time.Time
}

// pendingOTPReset returns the outstanding reset token for userID, issuing a
// new one (with a fresh otpResetWait cooldown) if none is outstanding yet.
// Repeating a failed OTP check before the cooldown elapses keeps returning
// the same token and date rather than restarting the clock.
func (h *Handler) pendingOTPReset(userID []byte) (token, readyAt string) {
	key := string(userID)
	if v, ok := h.pendingResets.Get(key); ok {
		pr := v.(pendingReset)
		return pr.Token, pr.ReadyAt.Format(time.RFC3339)
	}
	pr := pendingReset{Token: uuid.NewString(), ReadyAt: time.Now().Add(otpResetWait)}
	h.pendingResets.Set(key, pr, 0)
	return pr.Token, pr.ReadyAt.Format(time.RFC3339)
}

// consumeOTPReset reports whether token is the outstanding reset token for
// userID and its cooldown has elapsed, deleting it if so.
func (h *Handler) consumeOTPReset(userID []byte, token string) bool {
	key := string(userID)
	v, ok := h.pendingResets.Get(key)
	if !ok {
		return false
	}
	pr := v.(pendingReset)
	if pr.Token != token || time.Now().Before(pr.ReadyAt) {
		return false
	}
	h.pendingResets.Delete(key)
	return true
}

type otpEnableRequest struct {
	login.AuthJSON
	OtpSecret  string `json:"otp_secret"`
	OtpTimeout int64  `json:"otp_timeout"`
}

// handleOTPEnable serves POST /v1/otp/on.
func (h *Handler) handleOTPEnable(w http.ResponseWriter, r *http.Request) {
	var req otpEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	acct, err := h.authenticatePassword(r.Context(), req.UserID, req.PasswordAuth)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	// Rotating an already-enabled key still requires the current code, so
	// a stolen password alone can't silently swap out 2FA.
	if acct.OTPKey != "" {
		if err := h.requireOTP(acct, req.OTP); err != nil {
			writeError(w, h.log, err)
			return
		}
	}

	if err := h.repos.Accounts.SetOTP(r.Context(), req.UserID, req.OtpSecret, req.OtpTimeout); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}

// handleOTPDisable serves POST /v1/otp/off.
func (h *Handler) handleOTPDisable(w http.ResponseWriter, r *http.Request) {
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

	if err := h.repos.Accounts.DisableOTP(r.Context(), auth.UserID); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}

type otpStatusResult struct {
	On      bool  `json:"on"`
	Timeout int64 `json:"otp_timeout"`
}

// handleOTPStatus serves POST /v1/otp/status. It only requires the
// password, not a current OTP code, so a user who has lost their
// authenticator can still see that OTP is on and decide to request a reset.
func (h *Handler) handleOTPStatus(w http.ResponseWriter, r *http.Request) {
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
	writeReply(w, otpStatusResult{On: acct.OTPKey != "", Timeout: acct.OTPTimeoutSeconds})
}

type otpResetRequest struct {
	UserID        []byte `json:"userId"`
	OtpResetToken string `json:"otp_reset_auth"`
}

// handleOTPReset serves POST /v1/otp/reset: an unauthenticated endpoint
// identified by the userID plus the reset token a prior failed OTP check
// issued. It accepts only once otpResetWait has elapsed since issuance.
func (h *Handler) handleOTPReset(w http.ResponseWriter, r *http.Request) {
	var req otpResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	if !h.consumeOTPReset(req.UserID, req.OtpResetToken) {
		writeError(w, h.log, abcerr.New(abcerr.InvalidOTP, "reset token is invalid, consumed, or not yet due"))
		return
	}
	if err := h.repos.Accounts.DisableOTP(r.Context(), req.UserID); err != nil {
		writeError(w, h.log, mapFetchErr(err))
		return
	}
	writeReply(w, nil)
}
