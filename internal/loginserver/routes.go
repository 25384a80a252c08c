// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init constructs the [chi.Mux] that serves every route this package
// handles. cmd/abcserver hands the result straight to internal/server.
//
// Every request passes through [middleware.Recoverer], [Handler.withTraceID],
// withLogging, and withGZip, in that order, before reaching route-specific
// handlers. None of these routes carry a bearer-token session: each request
// authenticates itself inline via the credential fields embedded in its own
// body, so there is no blanket auth middleware to apply per route group.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, withLogging, withGZip)

	router.Route("/v1/account", func(account chi.Router) {
		account.Post("/create", h.handleCreateAccount)
		account.Post("/activate", h.handleActivateAccount)
		account.Post("/upgrade", h.handleUpgradeAccount)
		account.Post("/carepackage/get", h.handleFetchCarePackage)
		account.Post("/debug", h.handleUploadDebugLog)

		account.Route("/pinpackage", func(pin chi.Router) {
			pin.Post("/get", h.handleFetchPinPackage)
			pin.Post("/update", h.handleUpdatePinPackage)
		})
	})

	router.Route("/v1/otp", func(otpRoutes chi.Router) {
		otpRoutes.Post("/on", h.handleOTPEnable)
		otpRoutes.Post("/off", h.handleOTPDisable)
		otpRoutes.Post("/status", h.handleOTPStatus)
		otpRoutes.Post("/reset", h.handleOTPReset)
	})

	router.Route("/v2/login", func(v2login chi.Router) {
		v2login.Post("/", h.handleLogin)
		v2login.Put("/password", h.handleUpdatePassword)
		v2login.Post("/keys", h.handleUpdateKeys)

		v2login.Route("/pin2", func(pin2 chi.Router) {
			pin2.Put("/", h.handleUpdatePin2)
			pin2.Delete("/", h.handleDeletePin2)
		})

		v2login.Route("/recovery2", func(recovery2 chi.Router) {
			recovery2.Put("/", h.handleUpdateRecovery2)
			recovery2.Delete("/", h.handleDeleteRecovery2)
		})
	})

	router.Route("/v2/lobby", func(lobby chi.Router) {
		lobby.Post("/", h.handleCreateLobby)
		lobby.Get("/{id}", h.handleFetchLobby)
		lobby.Put("/{id}", h.handleUpdateLobby)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))
	return router
}
