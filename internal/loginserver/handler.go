// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/abcwallet/abc-core/internal/logger"
	"github.com/abcwallet/abc-core/internal/otp"
	"github.com/abcwallet/abc-core/internal/store"
)

// Handler is the root HTTP handler wiring together every credential-flow
// route and its middleware chain.
//
// Handler is constructed once at startup via [NewHandler]; [Handler.Init]
// then builds the [chi.Mux] that cmd/abcserver hands to internal/server.
type Handler struct {
	repos *store.Repositories

	// lobbyTTL is how long a freshly created edge-login lobby stays valid
	// before LobbyRepository.Fetch reports it expired.
	lobbyTTL int64

	// pendingResets holds the OTP reset tokens issued by requireOTP,
	// keyed by userID. It has no row of its own in internal/store: unlike
	// a lobby, a pending reset is pure process-local bookkeeping with no
	// need to survive a restart, so it lives in an in-memory TTL cache
	// instead of a table.
	pendingResets *gocache.Cache

	log *logger.Logger
}

// NewHandler constructs a [Handler] backed by repos.
func NewHandler(repos *store.Repositories, log *logger.Logger) *Handler {
	log.Debug().Msg("loginserver handler created")
	return &Handler{
		repos:         repos,
		lobbyTTL:      defaultLobbyTTLSeconds,
		pendingResets: gocache.New(otpResetWait+24*time.Hour, time.Hour),
		log:           log,
	}
}

const defaultLobbyTTLSeconds = 300

// otpResetWait is the cooldown a user must wait out between requesting an
// OTP reset (failing a TOTP check) and the server honoring it, mirroring
// the original client's multi-day OTP reset grace period.
const otpResetWait = 7 * 24 * time.Hour

// checkOTP verifies code against key if the account has OTP enabled.
// An account with no OTP key configured accepts any (including empty) code.
// The submitted code is checked against the current time step and its
// immediate neighbors to tolerate ordinary client/server clock skew.
func checkOTP(key string, code string) bool {
	if key == "" {
		return true
	}
	k, err := otp.DecodeBase32(key)
	if err != nil {
		return false
	}

	now := time.Now()
	for _, offset := range []time.Duration{0, -otp.DefaultTimeStep, otp.DefaultTimeStep} {
		if k.TOTPAt(now.Add(offset), otp.DefaultTimeStep, otp.DefaultDigits) == code {
			return true
		}
	}
	return false
}
