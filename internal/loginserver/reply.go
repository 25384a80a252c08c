// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/logger"
)

const (
	codeSuccess         = 0
	codeError           = 1
	codeAccountExists   = 2
	codeNoAccount       = 3
	codeInvalidPassword = 4
	codeInvalidAnswers  = 5
	codeInvalidOTP      = 8
)

type reply struct {
	Code    int    `json:"status_code"`
	Message string `json:"message,omitempty"`
	Results any    `json:"results,omitempty"`
}

func writeReply(w http.ResponseWriter, results any) {
	writeJSON(w, http.StatusOK, reply{Code: codeSuccess, Results: results})
}

// writeError maps err to a status_code and an HTTP status the same way
// internal/serverclient.mapStatus reads them back, and logs anything that
// isn't an ordinary credential-flow rejection.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	code, httpStatus, results := classifyError(err)
	if httpStatus >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("loginserver request failed")
	}
	writeJSON(w, httpStatus, reply{Code: code, Message: err.Error(), Results: results})
}

func classifyError(err error) (statusCode, httpStatus int, results any) {
	var abcErr *abcerr.Error
	if !errors.As(err, &abcErr) {
		return codeError, http.StatusInternalServerError, nil
	}

	switch abcErr.Kind {
	case abcerr.AccountAlreadyExists:
		return codeAccountExists, http.StatusConflict, nil
	case abcerr.AccountDoesNotExist:
		return codeNoAccount, http.StatusNotFound, nil
	case abcerr.BadPassword:
		return codeInvalidPassword, http.StatusUnauthorized, nil
	case abcerr.InvalidPinWait:
		return codeInvalidPassword, http.StatusUnauthorized, map[string]int{"wait_seconds": abcErr.WaitSeconds}
	case abcerr.InvalidOTP:
		return codeInvalidOTP, http.StatusUnauthorized, map[string]string{
			"otp_reset_auth":   abcErr.OTPResetToken,
			"otp_timeout_date": abcErr.OTPResetDate,
		}
	case abcerr.InvalidAnswers:
		return codeInvalidAnswers, http.StatusUnauthorized, nil
	default:
		return codeError, http.StatusInternalServerError, nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
